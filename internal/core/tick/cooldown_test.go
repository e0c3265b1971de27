package tick

import (
	"testing"
	"time"
)

func TestCooldownWindow(t *testing.T) {
	cd := Cooldown{Ticks: 4}
	if !cd.Ready(0) {
		t.Fatal("fresh cooldown should be ready")
	}
	cd.Start(10)
	if cd.Ready(13) {
		t.Fatal("ready before window closed")
	}
	if !cd.Ready(14) {
		t.Fatal("not ready when window closed")
	}
	if got := cd.Remaining(11); got != 3 {
		t.Fatalf("expected 3 ticks remaining, got %d", got)
	}
	if got := cd.RemainingDuration(11, DefaultDuration); got != 1800*time.Millisecond {
		t.Fatalf("expected 1.8s remaining, got %s", got)
	}
	cd.Reset(11)
	if !cd.Ready(11) {
		t.Fatal("reset cooldown should be ready")
	}
}

func TestCooldownZeroTicksActsAsOne(t *testing.T) {
	var cd Cooldown
	cd.Start(5)
	if cd.Ready(5) || !cd.Ready(6) {
		t.Fatalf("expected 1-tick window, next=%d", cd.Next())
	}
}

func TestCooldownExtendOnlyMovesForward(t *testing.T) {
	cd := Cooldown{Ticks: 2}
	cd.Start(10) // next 12
	cd.Extend(11)
	if cd.Next() != 12 {
		t.Fatalf("extend moved cooldown backwards to %d", cd.Next())
	}
	cd.Extend(20)
	if cd.Next() != 20 {
		t.Fatalf("expected next 20, got %d", cd.Next())
	}
}
