package world

import (
	"math/rand"

	"github.com/l1jgo/ticksim/internal/action"
	"github.com/l1jgo/ticksim/internal/combat"
	"github.com/l1jgo/ticksim/internal/component"
)

// Formulas supplies the random rules actors roll against. The scripting
// engine implements it; Builtin is the pure-Go default.
type Formulas interface {
	SwingResolver(hitChance float64, maxHit int, seed int64) combat.SwingResolver
	GatherRoller(chance float64, skills *component.Skills, seed int64) action.GatherRoller
	CombatXP(damage int) action.XPSplit
}

// Builtin rolls with math/rand and the default XP split.
type Builtin struct{}

func (Builtin) SwingResolver(hitChance float64, maxHit int, seed int64) combat.SwingResolver {
	return combat.NewChanceResolver(hitChance, maxHit, seed)
}

func (Builtin) GatherRoller(chance float64, _ *component.Skills, seed int64) action.GatherRoller {
	return &action.ChanceRoller{Chance: chance, Rand: rand.New(rand.NewSource(seed))}
}

func (Builtin) CombatXP(damage int) action.XPSplit { return action.DefaultCombatXP(damage) }
