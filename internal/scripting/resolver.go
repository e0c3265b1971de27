package scripting

import (
	"math/rand"

	"github.com/l1jgo/ticksim/internal/action"
	"github.com/l1jgo/ticksim/internal/combat"
	"github.com/l1jgo/ticksim/internal/component"
)

// SwingResolver draws rolls from its own seeded source and lets the engine
// decide the outcome. Implements combat.SwingResolver.
type SwingResolver struct {
	engine    *Engine
	rng       *rand.Rand
	HitChance float64
	MaxHit    int
}

func NewSwingResolver(e *Engine, hitChance float64, maxHit int, seed int64) *SwingResolver {
	return &SwingResolver{
		engine:    e,
		rng:       rand.New(rand.NewSource(seed)),
		HitChance: hitChance,
		MaxHit:    maxHit,
	}
}

func (r *SwingResolver) Swing() combat.SwingResult {
	return r.engine.CalcSwing(SwingContext{
		HitChance:  r.HitChance,
		MaxHit:     r.MaxHit,
		HitRoll:    r.rng.Float64(),
		DamageRoll: r.rng.Float64(),
	})
}

// GatherRoller decides gathering attempts through the engine.
// Implements action.GatherRoller.
type GatherRoller struct {
	engine *Engine
	rng    *rand.Rand
	skills *component.Skills
	Chance float64
}

func NewGatherRoller(e *Engine, chance float64, skills *component.Skills, seed int64) *GatherRoller {
	return &GatherRoller{
		engine: e,
		rng:    rand.New(rand.NewSource(seed)),
		skills: skills,
		Chance: chance,
	}
}

func (r *GatherRoller) Attempt() bool {
	return r.engine.CalcGather(GatherContext{
		Chance: r.Chance,
		Roll:   r.rng.Float64(),
		XP:     r.skills.Get(component.SkillWoodcutting),
	})
}

// SwingResolver and GatherRoller let the engine stand in for the world's
// built-in formulas.
func (e *Engine) SwingResolver(hitChance float64, maxHit int, seed int64) combat.SwingResolver {
	return NewSwingResolver(e, hitChance, maxHit, seed)
}

func (e *Engine) GatherRoller(chance float64, skills *component.Skills, seed int64) action.GatherRoller {
	return NewGatherRoller(e, chance, skills, seed)
}
