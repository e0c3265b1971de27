package resource

import (
	"testing"

	"github.com/l1jgo/ticksim/internal/core/ecs"
	"github.com/l1jgo/ticksim/internal/core/event"
	"github.com/l1jgo/ticksim/internal/core/tick"
	"go.uber.org/zap"
)

type harness struct {
	now   tick.Tick
	sched *tick.Scheduler
	bus   *event.Bus
	node  *Node
}

func newHarness(uses int, delay int64) *harness {
	h := &harness{bus: event.NewBus()}
	h.sched = tick.NewScheduler(func() tick.Tick { return h.now }, zap.NewNop())
	h.node = NewNode(ecs.EntityID(7), Config{Uses: uses, RespawnDelay: delay}, h.sched, func() tick.Tick { return h.now }, h.bus, zap.NewNop())
	return h
}

// advance runs ticks up to and including t: scheduler first, then the node.
func (h *harness) advance(t tick.Tick) {
	for h.now < t {
		h.now++
		h.sched.OnTick(h.now)
		h.node.OnTick(h.now)
	}
}

func TestNodeDepletesAndRespawnsAfterDelay(t *testing.T) {
	h := newHarness(DefaultUses, DefaultRespawnDelay)
	h.advance(46)
	for i := 0; i < 4; i++ {
		h.node.ApplyChop(1)
	}
	if !h.node.Available() || h.node.Remaining() != 1 {
		t.Fatalf("expected 1 use left, got %d", h.node.Remaining())
	}
	h.advance(50)
	h.node.ApplyChop(1)
	if h.node.Available() {
		t.Fatal("node still available after last use")
	}
	h.advance(59)
	if h.node.Available() {
		t.Fatal("node respawned early")
	}
	h.advance(60)
	if !h.node.Available() || h.node.Remaining() != DefaultUses {
		t.Fatalf("expected full respawn at 60, got available=%v remaining=%d", h.node.Available(), h.node.Remaining())
	}

	var depleted, respawned []tick.Tick
	event.Subscribe(h.bus, func(e event.ResourceDepleted) { depleted = append(depleted, e.Tick) })
	event.Subscribe(h.bus, func(e event.ResourceRespawned) { respawned = append(respawned, e.Tick) })
	h.bus.SwapBuffers()
	h.bus.DispatchAll()
	if len(depleted) != 1 || depleted[0] != 50 {
		t.Fatalf("expected one depletion at 50, got %v", depleted)
	}
	if len(respawned) != 1 || respawned[0] != 60 {
		t.Fatalf("expected one respawn at 60, got %v", respawned)
	}
}

func TestNodeChopWhileDepletedIsNoop(t *testing.T) {
	h := newHarness(1, 5)
	h.node.ApplyChop(1)
	h.node.ApplyChop(3)
	h.node.ApplyChop(0)
	if h.sched.Pending() != 1 {
		t.Fatalf("expected exactly one pending respawn, got %d", h.sched.Pending())
	}
}

func TestNodeChopDamageClampedToOne(t *testing.T) {
	h := newHarness(3, 5)
	h.node.ApplyChop(0)
	h.node.ApplyChop(-2)
	if h.node.Remaining() != 1 {
		t.Fatalf("expected 1 use left, got %d", h.node.Remaining())
	}
}

func TestNodeExternalDamageDepletes(t *testing.T) {
	h := newHarness(4, 3)
	h.node.Health().ApplyDamage(99, nil)
	if h.node.Available() || !h.node.RespawnPending() {
		t.Fatal("external damage did not deplete the node")
	}
	h.advance(3)
	if !h.node.Available() {
		t.Fatal("node did not respawn after external depletion")
	}
}

func TestNodeSafetyCheckCatchesMissedDeath(t *testing.T) {
	h := newHarness(2, 2)
	h.node.diedSub.Release() // simulate a lost hook
	h.node.Health().ApplyDamage(2, nil)
	if !h.node.Available() {
		t.Fatal("depleted without the hook")
	}
	h.advance(1)
	if h.node.Available() || h.sched.Pending() != 1 {
		t.Fatal("safety check did not deplete")
	}
	h.advance(3)
	if !h.node.Available() {
		t.Fatal("no respawn after safety-check depletion")
	}
}

func TestNodeCloseCancelsRespawn(t *testing.T) {
	h := newHarness(1, 2)
	h.node.ApplyChop(1)
	h.node.Close()
	h.advance(5)
	if h.node.Available() {
		t.Fatal("closed node respawned")
	}
	h.node.Close()
}
