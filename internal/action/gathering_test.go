package action

import (
	"math"
	"testing"

	"github.com/l1jgo/ticksim/internal/component"
	"github.com/l1jgo/ticksim/internal/core/tick"
)

type stubNode struct{ uses int }

func (n *stubNode) Available() bool { return n.uses > 0 }
func (n *stubNode) ApplyChop(int) {
	if n.uses > 0 {
		n.uses--
	}
}

type always bool

func (a always) Attempt() bool { return bool(a) }

func TestGatheringHarvestsUntilExhausted(t *testing.T) {
	node := &stubNode{uses: 3}
	inv := component.NewInventory(0)
	skills := &component.Skills{}
	a := NewGatheringAction(GatheringParams{
		Resource:  node,
		Inventory: inv,
		Skills:    skills,
		Roller:    always(true),
		XP:        DefaultGatherXP,
	})
	a.Begin(0)
	for tk := tick.Tick(0); tk <= 20 && !a.IsComplete(); tk++ {
		a.OnTick(tk)
	}
	if !a.IsComplete() {
		t.Fatal("gathering did not complete on exhaustion")
	}
	if inv.Count(DefaultGatherItem) != 3 {
		t.Fatalf("expected 3 logs, got %d", inv.Count(DefaultGatherItem))
	}
	if skills.Get(component.SkillWoodcutting) != 75 {
		t.Fatalf("expected 75 xp, got %v", skills.Get(component.SkillWoodcutting))
	}
	attempts, units := a.Harvested()
	if attempts != 3 || units != 3 {
		t.Fatalf("expected 3/3, got %d/%d", attempts, units)
	}
}

func TestGatheringIntervalAppliesOnFailure(t *testing.T) {
	node := &stubNode{uses: 5}
	inv := component.NewInventory(0)
	a := NewGatheringAction(GatheringParams{Resource: node, Inventory: inv, Roller: always(false)})
	a.Begin(0)
	for tk := tick.Tick(0); tk < 12; tk++ {
		a.OnTick(tk)
	}
	attempts, units := a.Harvested()
	// 0, 4, 8
	if attempts != 3 || units != 0 {
		t.Fatalf("expected 3 failed attempts, got %d/%d", attempts, units)
	}
	if node.uses != 5 {
		t.Fatal("failed attempts consumed the resource")
	}
}

func TestGatheringStopsWhenInventoryFull(t *testing.T) {
	node := &stubNode{uses: 10}
	inv := component.NewInventory(2)
	a := NewGatheringAction(GatheringParams{Resource: node, Inventory: inv, Roller: always(true), Interval: 1})
	a.Begin(0)
	for tk := tick.Tick(0); tk < 5; tk++ {
		a.OnTick(tk)
	}
	if !a.IsComplete() || len(inv.Items) != 2 {
		t.Fatalf("expected full stop at 2 items, complete=%v items=%d", a.IsComplete(), len(inv.Items))
	}
	if node.uses != 8 {
		t.Fatalf("expected 8 uses left, got %d", node.uses)
	}
}

func TestGatheringUnavailableResourceCompletes(t *testing.T) {
	a := NewGatheringAction(GatheringParams{Resource: &stubNode{}, Inventory: component.NewInventory(0), Roller: always(true)})
	a.Begin(3)
	a.OnTick(3)
	if !a.IsComplete() {
		t.Fatal("gathering a depleted resource did not complete")
	}
}

func TestChanceRollerRate(t *testing.T) {
	r := NewChanceRoller(DefaultGatherChance, 7)
	hits := 0
	const n = 5000
	for i := 0; i < n; i++ {
		if r.Attempt() {
			hits++
		}
	}
	if rate := float64(hits) / n; math.Abs(rate-0.9) > 0.02 {
		t.Fatalf("success rate %.3f not near 0.9", rate)
	}
}
