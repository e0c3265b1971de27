package combat

import "math/rand"

// Default swing formula constants.
const (
	DefaultHitChance = 0.75
	DefaultMaxHit    = 10
)

// SwingResult is the outcome of one attack roll.
type SwingResult struct {
	Hit    bool
	Damage int
}

// SwingResolver decides hit and damage for a single swing.
type SwingResolver interface {
	Swing() SwingResult
}

// ChanceResolver hits with a fixed probability and draws damage uniformly
// from [0, MaxHit] inclusive.
type ChanceResolver struct {
	HitChance float64
	MaxHit    int
	Rand      *rand.Rand
}

// NewChanceResolver builds a resolver with its own seeded source.
func NewChanceResolver(hitChance float64, maxHit int, seed int64) *ChanceResolver {
	return &ChanceResolver{
		HitChance: hitChance,
		MaxHit:    maxHit,
		Rand:      rand.New(rand.NewSource(seed)),
	}
}

func (r *ChanceResolver) Swing() SwingResult {
	if r.Rand.Float64() >= r.HitChance {
		return SwingResult{}
	}
	maxHit := r.MaxHit
	if maxHit < 0 {
		maxHit = 0
	}
	return SwingResult{Hit: true, Damage: r.Rand.Intn(maxHit + 1)}
}

// FixedResolver always hits for Damage (the simple turn-based design).
type FixedResolver struct {
	Damage int
}

func (r FixedResolver) Swing() SwingResult {
	return SwingResult{Hit: true, Damage: r.Damage}
}
