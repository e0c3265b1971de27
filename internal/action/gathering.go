package action

import (
	"math/rand"

	"github.com/l1jgo/ticksim/internal/component"
	"github.com/l1jgo/ticksim/internal/core/tick"
	"go.uber.org/zap"
)

const (
	KindGathering = "gathering"

	DefaultGatherInterval = 4
	DefaultGatherChance   = 0.9
	DefaultGatherXP       = 25
	DefaultGatherItem     = "log"
)

// Harvestable is a resource that yields one unit per successful attempt.
type Harvestable interface {
	Available() bool
	// ApplyChop consumes one use; a no-op unless Available.
	ApplyChop(damage int)
}

// GatherRoller decides whether one attempt succeeds.
type GatherRoller interface {
	Attempt() bool
}

// ChanceRoller succeeds with a fixed probability.
type ChanceRoller struct {
	Chance float64
	Rand   *rand.Rand
}

func NewChanceRoller(chance float64, seed int64) *ChanceRoller {
	return &ChanceRoller{Chance: chance, Rand: rand.New(rand.NewSource(seed))}
}

func (r *ChanceRoller) Attempt() bool { return r.Rand.Float64() < r.Chance }

// GatheringParams wires a GatheringAction to its collaborators.
type GatheringParams struct {
	Resource  Harvestable
	Inventory *component.Inventory
	Skills    *component.Skills // may be nil
	Roller    GatherRoller
	Interval  tick.Tick // < 1 means DefaultGatherInterval
	Item      string    // "" means DefaultGatherItem
	XP        float64   // per unit, credited to woodcutting
	Log       *zap.Logger
}

// GatheringAction repeatedly attempts to harvest a resource until it is
// exhausted or the inventory is full.
type GatheringAction struct {
	Lifecycle
	p        GatheringParams
	cooldown tick.Cooldown

	attempts  int
	harvested int
}

func NewGatheringAction(p GatheringParams) *GatheringAction {
	if p.Interval < 1 {
		p.Interval = DefaultGatherInterval
	}
	if p.Item == "" {
		p.Item = DefaultGatherItem
	}
	if p.Log == nil {
		p.Log = zap.NewNop()
	}
	return &GatheringAction{p: p, cooldown: tick.Cooldown{Ticks: p.Interval}}
}

func (a *GatheringAction) Kind() string { return KindGathering }

// Begin makes the first attempt eligible immediately.
func (a *GatheringAction) Begin(now tick.Tick) {
	a.Activate()
	a.cooldown.Reset(now)
}

func (a *GatheringAction) OnTick(t tick.Tick) {
	if a.State() != StateActive {
		return
	}
	if a.p.Resource == nil || !a.p.Resource.Available() {
		a.Finish()
		return
	}
	if a.p.Inventory == nil || !a.p.Inventory.HasSpace() {
		a.p.Log.Debug("inventory full, gathering stopped")
		a.Finish()
		return
	}
	if a.p.Roller == nil {
		a.p.Log.Warn("gathering action missing roller")
		a.Finish()
		return
	}
	if !a.cooldown.Ready(t) {
		return
	}
	a.cooldown.Start(t)
	a.attempt()
}

func (a *GatheringAction) attempt() {
	a.attempts++
	if !a.p.Roller.Attempt() {
		return
	}
	a.p.Inventory.Add(a.p.Item)
	a.harvested++
	a.p.Skills.AddXP(component.SkillWoodcutting, a.p.XP)
	a.p.Resource.ApplyChop(1)
	if !a.p.Resource.Available() {
		a.Finish()
	}
}

// Resource returns the node being harvested.
func (a *GatheringAction) Resource() Harvestable { return a.p.Resource }

// Harvested returns attempts made and units gathered.
func (a *GatheringAction) Harvested() (attempts, units int) { return a.attempts, a.harvested }
