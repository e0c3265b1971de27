package tick

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClock(maxCatchUp int) *Clock {
	return NewClock(DefaultDuration, maxCatchUp, zap.NewNop())
}

func TestAdvanceFiresOneTickPerCall(t *testing.T) {
	c := newTestClock(0)
	var fired []Tick
	c.Register(Func(PhaseUpdate, func(tk Tick) { fired = append(fired, tk) }))

	if n := c.Advance(650 * time.Millisecond); n != 1 {
		t.Fatalf("first advance: expected 1 tick, got %d", n)
	}
	if c.Remainder() != 50*time.Millisecond {
		t.Fatalf("expected remainder 50ms, got %s", c.Remainder())
	}
	if n := c.Advance(650 * time.Millisecond); n != 1 {
		t.Fatalf("second advance: expected 1 tick, got %d", n)
	}
	if c.Remainder() != 100*time.Millisecond {
		t.Fatalf("expected remainder 100ms, got %s", c.Remainder())
	}
	if len(fired) != 2 || fired[0] != 1 || fired[1] != 2 {
		t.Fatalf("expected ticks [1 2], got %v", fired)
	}
}

func TestAdvanceBelowDurationFiresNothing(t *testing.T) {
	c := newTestClock(0)
	if n := c.Advance(599 * time.Millisecond); n != 0 {
		t.Fatalf("expected no tick, got %d", n)
	}
	if c.Current() != 0 {
		t.Fatalf("expected tick 0, got %d", c.Current())
	}
	if got := c.TimeUntilNextTick(); got != time.Millisecond {
		t.Fatalf("expected 1ms until next tick, got %s", got)
	}
}

func TestAdvanceIgnoresNegativeElapsed(t *testing.T) {
	c := newTestClock(0)
	c.Advance(300 * time.Millisecond)
	c.Advance(-time.Second)
	if c.Remainder() != 300*time.Millisecond {
		t.Fatalf("negative elapsed changed remainder: %s", c.Remainder())
	}
}

func TestAdvanceCatchUpUncapped(t *testing.T) {
	c := newTestClock(0)
	if n := c.Advance(6100 * time.Millisecond); n != 10 {
		t.Fatalf("expected 10 catch-up ticks, got %d", n)
	}
	if c.Current() != 10 {
		t.Fatalf("expected tick 10, got %d", c.Current())
	}
	if c.Remainder() != 100*time.Millisecond {
		t.Fatalf("expected remainder 100ms, got %s", c.Remainder())
	}
}

func TestAdvanceCatchUpCappedDropsBacklog(t *testing.T) {
	c := newTestClock(3)
	if n := c.Advance(10*time.Minute + 250*time.Millisecond); n != 3 {
		t.Fatalf("expected cap of 3 ticks, got %d", n)
	}
	if c.Current() != 3 {
		t.Fatalf("expected tick 3, got %d", c.Current())
	}
	if c.Remainder() != 250*time.Millisecond {
		t.Fatalf("expected sub-tick remainder 250ms kept, got %s", c.Remainder())
	}
	if n := c.Advance(350 * time.Millisecond); n != 1 {
		t.Fatalf("expected normal cadence after stall, got %d", n)
	}
}

func TestTickCounterNeverDecreases(t *testing.T) {
	c := newTestClock(5)
	prev := c.Current()
	for _, d := range []time.Duration{0, 10 * time.Millisecond, time.Second, 5 * time.Second, -time.Second, 600 * time.Millisecond} {
		c.Advance(d)
		if c.Current() < prev {
			t.Fatalf("tick went backwards: %d -> %d", prev, c.Current())
		}
		prev = c.Current()
	}
}

func TestSchedulerRunsBeforeListeners(t *testing.T) {
	c := newTestClock(0)
	var order []string
	c.Register(Func(PhasePreUpdate, func(Tick) { order = append(order, "listener") }))
	if _, err := c.Scheduler().Schedule(func(Tick) { order = append(order, "scheduled") }, 1, 0); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	c.Step()
	if len(order) != 2 || order[0] != "scheduled" || order[1] != "listener" {
		t.Fatalf("expected scheduler before listeners, got %v", order)
	}
}

func TestPassWrapperSurroundsTick(t *testing.T) {
	c := newTestClock(0)
	var seen []string
	c.Register(Func(PhaseUpdate, func(Tick) { seen = append(seen, "pass") }))
	c.SetPassWrapper(func(tk Tick, pass func()) {
		seen = append(seen, "begin")
		pass()
		seen = append(seen, "end")
	})
	c.Step()
	if len(seen) != 3 || seen[0] != "begin" || seen[1] != "pass" || seen[2] != "end" {
		t.Fatalf("unexpected wrapper order %v", seen)
	}
}

func TestTicksFor(t *testing.T) {
	c := newTestClock(0)
	tests := []struct {
		d    time.Duration
		want int64
	}{
		{0, 1},
		{time.Millisecond, 1},
		{600 * time.Millisecond, 1},
		{601 * time.Millisecond, 2},
		{6 * time.Second, 10},
	}
	for _, tt := range tests {
		if got := c.TicksFor(tt.d); got != tt.want {
			t.Fatalf("TicksFor(%s) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestNewClockRejectsZeroDuration(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero duration")
		}
	}()
	NewClock(0, 0, zap.NewNop())
}
