package action

import (
	"github.com/l1jgo/ticksim/internal/combat"
	"github.com/l1jgo/ticksim/internal/component"
	"github.com/l1jgo/ticksim/internal/core/tick"
	"go.uber.org/zap"
)

const (
	KindCombat = "combat"

	// DefaultAttackRange is the melee reach on the horizontal plane.
	DefaultAttackRange = 1.8
	// DefaultAttackSpeed is ticks between swings (2.4s at 600ms ticks).
	DefaultAttackSpeed = 4
)

// XP credited per point of damage dealt.
const (
	xpAttackPerDamage    = 4.0
	xpStrengthPerDamage  = 1.33
	xpHitpointsPerDamage = 1.33
)

// XPSplit is the experience awarded for one landed hit.
type XPSplit struct {
	Attack    float64
	Strength  float64
	Hitpoints float64
}

// XPFormula maps damage dealt to an XPSplit.
type XPFormula func(damage int) XPSplit

// DefaultCombatXP credits 4x damage to attack and 1.33x to strength and hitpoints.
func DefaultCombatXP(damage int) XPSplit {
	d := float64(damage)
	return XPSplit{
		Attack:    d * xpAttackPerDamage,
		Strength:  d * xpStrengthPerDamage,
		Hitpoints: d * xpHitpointsPerDamage,
	}
}

// CombatParams wires a CombatAction to its collaborators.
type CombatParams struct {
	Attacker    Locator
	Defender    Locator
	Target      *combat.Health
	Source      *combat.Combatant // reported as the attacker on damage; may be nil
	Skills      *component.Skills // may be nil
	Resolver    combat.SwingResolver
	XP          XPFormula // nil means DefaultCombatXP
	Range       float64   // <= 0 means DefaultAttackRange
	AttackSpeed tick.Tick // < 1 means DefaultAttackSpeed
	Log         *zap.Logger
}

// CombatAction swings at a target on a fixed cooldown until the target dies
// or leaves range. There is no chasing: out of range ends the action.
type CombatAction struct {
	Lifecycle
	p        CombatParams
	cooldown tick.Cooldown

	swings int
	hits   int
}

func NewCombatAction(p CombatParams) *CombatAction {
	if p.Range <= 0 {
		p.Range = DefaultAttackRange
	}
	if p.AttackSpeed < 1 {
		p.AttackSpeed = DefaultAttackSpeed
	}
	if p.XP == nil {
		p.XP = DefaultCombatXP
	}
	if p.Log == nil {
		p.Log = zap.NewNop()
	}
	return &CombatAction{p: p, cooldown: tick.Cooldown{Ticks: p.AttackSpeed}}
}

func (a *CombatAction) Kind() string { return KindCombat }

// Begin makes the first swing eligible immediately.
func (a *CombatAction) Begin(now tick.Tick) {
	a.Activate()
	a.cooldown.Reset(now)
}

func (a *CombatAction) OnTick(t tick.Tick) {
	if a.State() != StateActive {
		return
	}
	if a.p.Target == nil || a.p.Target.Dead() {
		a.Finish()
		return
	}
	if a.p.Attacker == nil || a.p.Defender == nil || a.p.Resolver == nil {
		a.p.Log.Warn("combat action missing collaborator")
		a.Finish()
		return
	}
	ax, az := a.p.Attacker.Location()
	dx, dz := a.p.Defender.Location()
	if component.HorizontalDistance(ax, az, dx, dz) > a.p.Range {
		a.p.Log.Debug("combat target out of range")
		a.Finish()
		return
	}
	if !a.cooldown.Ready(t) {
		return
	}
	a.swing()
	a.cooldown.Start(t)
}

func (a *CombatAction) swing() {
	a.swings++
	res := a.p.Resolver.Swing()
	if !res.Hit {
		a.p.Log.Debug("swing missed")
		return
	}
	a.hits++
	a.p.Target.ApplyDamage(res.Damage, a.p.Source)
	if res.Damage > 0 {
		xp := a.p.XP(res.Damage)
		a.p.Skills.AddXP(component.SkillAttack, xp.Attack)
		a.p.Skills.AddXP(component.SkillStrength, xp.Strength)
		a.p.Skills.AddXP(component.SkillHitpoints, xp.Hitpoints)
	}
	a.p.Log.Debug("swing hit", zap.Int("damage", res.Damage))
}

// Target returns the health pool being attacked.
func (a *CombatAction) Target() *combat.Health { return a.p.Target }

// NextSwing returns the tick of the next eligible swing.
func (a *CombatAction) NextSwing() tick.Tick { return a.cooldown.Next() }

// Swings returns attempted and landed swing counts.
func (a *CombatAction) Swings() (attempted, landed int) { return a.swings, a.hits }
