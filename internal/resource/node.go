package resource

import (
	"github.com/l1jgo/ticksim/internal/combat"
	"github.com/l1jgo/ticksim/internal/component"
	"github.com/l1jgo/ticksim/internal/core/ecs"
	"github.com/l1jgo/ticksim/internal/core/event"
	"github.com/l1jgo/ticksim/internal/core/tick"
	"go.uber.org/zap"
)

// Defaults for a standard tree.
const (
	DefaultUses         = 5
	DefaultRespawnDelay = 10
)

// State of a node.
type State int

const (
	StateAvailable State = iota
	StateDepleted
)

func (s State) String() string {
	if s == StateDepleted {
		return "depleted"
	}
	return "available"
}

// Config is fixed at construction.
type Config struct {
	Uses         int   // Health-backed uses, minimum 1
	RespawnDelay int64 // ticks from depletion to respawn, minimum 1
}

// Node is a harvestable resource: Available → Depleted → Available.
// Uses are a Health pool so external damage can deplete it too.
//
// Depletion schedules exactly one respawn; further depletion signals while
// a respawn is pending are ignored.
type Node struct {
	Name string
	Pos  component.Position

	id    ecs.EntityID
	cfg   Config
	pool  *combat.Health
	sched *tick.Scheduler
	now   func() tick.Tick
	bus   *event.Bus
	log   *zap.Logger

	state   State
	respawn *tick.Handle
	diedSub *combat.Subscription
}

// NewNode creates an Available node registered for its own death hook.
func NewNode(id ecs.EntityID, cfg Config, sched *tick.Scheduler, now func() tick.Tick, bus *event.Bus, log *zap.Logger) *Node {
	if cfg.Uses < 1 {
		cfg.Uses = 1
	}
	if cfg.RespawnDelay < 1 {
		cfg.RespawnDelay = 1
	}
	n := &Node{
		id:    id,
		cfg:   cfg,
		pool:  combat.NewHealth(cfg.Uses),
		sched: sched,
		now:   now,
		bus:   bus,
		log:   log,
	}
	n.diedSub = n.pool.OnDied(func() { n.deplete(n.now()) })
	return n
}

func (n *Node) ID() ecs.EntityID       { return n.id }
func (n *Node) State() State           { return n.state }
func (n *Node) Available() bool        { return n.state == StateAvailable }
func (n *Node) Remaining() int         { return n.pool.Current() }
func (n *Node) Health() *combat.Health { return n.pool }

// Location implements action.Locator.
func (n *Node) Location() (x, z float64) { return n.Pos.Location() }

// RespawnPending reports whether a respawn callback is queued.
func (n *Node) RespawnPending() bool { return n.respawn.Pending() }

// ApplyChop consumes uses; damage below 1 counts as 1. No-op unless Available.
func (n *Node) ApplyChop(damage int) {
	if !n.Available() {
		return
	}
	if damage < 1 {
		damage = 1
	}
	n.pool.ApplyDamage(damage, nil)
}

func (n *Node) Phase() tick.Phase { return tick.PhasePostUpdate }

// OnTick catches a pool emptied without the died hook reaching us.
func (n *Node) OnTick(t tick.Tick) {
	if n.state == StateAvailable && n.pool.Dead() {
		n.deplete(t)
	}
}

func (n *Node) deplete(t tick.Tick) {
	if n.state == StateDepleted {
		return
	}
	n.state = StateDepleted
	event.Emit(n.bus, event.ResourceDepleted{Tick: t, Node: n.id})
	if n.respawn.Pending() {
		return
	}
	h, err := n.sched.Schedule(n.respawnNow, n.cfg.RespawnDelay, 0)
	if err != nil {
		n.log.Error("resource respawn schedule failed", zap.Stringer("node", n.id), zap.Error(err))
		return
	}
	n.respawn = h
	n.log.Debug("resource depleted",
		zap.Stringer("node", n.id),
		zap.Uint64("tick", uint64(t)),
		zap.Int64("respawn_in", n.cfg.RespawnDelay))
}

func (n *Node) respawnNow(t tick.Tick) {
	n.respawn = nil
	n.pool.HealFull()
	n.state = StateAvailable
	event.Emit(n.bus, event.ResourceRespawned{Tick: t, Node: n.id})
	n.log.Debug("resource respawned", zap.Stringer("node", n.id), zap.Uint64("tick", uint64(t)))
}

// Close cancels a pending respawn and drops the death hook. Call on despawn.
func (n *Node) Close() {
	n.respawn.Cancel()
	n.respawn = nil
	n.diedSub.Release()
	n.diedSub = nil
}
