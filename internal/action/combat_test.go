package action

import (
	"testing"

	"github.com/l1jgo/ticksim/internal/combat"
	"github.com/l1jgo/ticksim/internal/component"
	"github.com/l1jgo/ticksim/internal/core/tick"
)

type scriptedResolver struct {
	results []combat.SwingResult
	i       int
}

func (r *scriptedResolver) Swing() combat.SwingResult {
	res := r.results[r.i%len(r.results)]
	r.i++
	return res
}

func newCombatAction(target *combat.Health, res combat.SwingResolver, skills *component.Skills) (*CombatAction, *component.Position, *component.Position) {
	atk := &component.Position{}
	def := &component.Position{X: 1}
	a := NewCombatAction(CombatParams{
		Attacker: atk,
		Defender: def,
		Target:   target,
		Skills:   skills,
		Resolver: res,
	})
	return a, atk, def
}

func TestCombatActionFirstSwingImmediateThenCadence(t *testing.T) {
	target := combat.NewHealth(100)
	a, _, _ := newCombatAction(target, combat.FixedResolver{Damage: 2}, nil)
	a.Begin(10)
	for tk := tick.Tick(10); tk <= 18; tk++ {
		a.OnTick(tk)
	}
	// swings at 10, 14, 18
	if target.Current() != 94 {
		t.Fatalf("expected 3 swings, hp=%d", target.Current())
	}
	if a.NextSwing() != 22 {
		t.Fatalf("expected next swing at 22, got %d", a.NextSwing())
	}
}

func TestCombatActionAwardsXPOnHit(t *testing.T) {
	target := combat.NewHealth(100)
	skills := &component.Skills{}
	res := &scriptedResolver{results: []combat.SwingResult{{Hit: true, Damage: 3}, {}}}
	a, _, _ := newCombatAction(target, res, skills)
	a.Begin(0)
	a.OnTick(0)
	a.OnTick(4) // miss
	if got := skills.Get(component.SkillAttack); got != 12 {
		t.Fatalf("expected 12 attack xp, got %v", got)
	}
	if got := skills.Get(component.SkillStrength); got < 3.98 || got > 4.0 {
		t.Fatalf("expected 3.99 strength xp, got %v", got)
	}
	if got := skills.Get(component.SkillHitpoints); got < 3.98 || got > 4.0 {
		t.Fatalf("expected 3.99 hitpoints xp, got %v", got)
	}
	attempted, landed := a.Swings()
	if attempted != 2 || landed != 1 {
		t.Fatalf("expected 2 swings / 1 hit, got %d/%d", attempted, landed)
	}
}

func TestCombatActionCompletesOnTargetDeath(t *testing.T) {
	target := combat.NewHealth(5)
	a, _, _ := newCombatAction(target, combat.FixedResolver{Damage: 5}, nil)
	a.Begin(1)
	a.OnTick(1)
	if !target.Dead() {
		t.Fatal("target survived a lethal hit")
	}
	a.OnTick(2)
	if !a.IsComplete() {
		t.Fatal("action did not complete after target death")
	}
}

func TestCombatActionCompletesOutOfRange(t *testing.T) {
	target := combat.NewHealth(50)
	a, _, def := newCombatAction(target, combat.FixedResolver{Damage: 1}, nil)
	def.Y = 40 // height is ignored
	a.Begin(1)
	a.OnTick(1)
	if a.IsComplete() {
		t.Fatal("height difference ended the fight")
	}
	def.X = 1.81
	a.OnTick(2)
	if !a.IsComplete() {
		t.Fatal("action continued out of range")
	}
	if target.Current() != 49 {
		t.Fatalf("expected one swing before leaving range, hp=%d", target.Current())
	}
}

func TestCombatActionNilTargetCompletes(t *testing.T) {
	a := NewCombatAction(CombatParams{})
	a.Begin(1)
	a.OnTick(1)
	if !a.IsComplete() {
		t.Fatal("action without target did not complete")
	}
}
