package combat

import "testing"

type healthRecorder struct {
	events []string
	died   int
}

func record(h *Health) *healthRecorder {
	r := &healthRecorder{}
	h.OnDamaged(func(amount int, _ *Combatant) { r.events = append(r.events, "damaged") })
	h.OnChanged(func(int) { r.events = append(r.events, "changed") })
	h.OnDied(func() {
		r.died++
		r.events = append(r.events, "died")
	})
	return r
}

func TestApplyDamageClampsAndDiesOnce(t *testing.T) {
	h := NewHealth(10)
	r := record(h)

	h.ApplyDamage(15, nil)
	if h.Current() != 0 || !h.Dead() {
		t.Fatalf("expected dead at 0, got %d", h.Current())
	}
	if r.died != 1 {
		t.Fatalf("expected one death notification, got %d", r.died)
	}
	want := []string{"damaged", "changed", "died"}
	if len(r.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, r.events)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, r.events)
		}
	}

	h.ApplyDamage(3, nil)
	if len(r.events) != 3 || r.died != 1 {
		t.Fatalf("damage after death emitted %v", r.events[3:])
	}
	if h.Current() != 0 {
		t.Fatalf("damage after death changed health to %d", h.Current())
	}
}

func TestApplyDamageNegativeIsZero(t *testing.T) {
	h := NewHealth(10)
	var got []int
	h.OnDamaged(func(amount int, _ *Combatant) { got = append(got, amount) })
	h.ApplyDamage(-4, nil)
	if h.Current() != 10 {
		t.Fatalf("negative damage healed/hurt: %d", h.Current())
	}
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected one damaged(0), got %v", got)
	}
}

func TestHealFullRevivesAndAllowsSecondDeath(t *testing.T) {
	h := NewHealth(4)
	r := record(h)
	h.ApplyDamage(4, nil)
	h.HealFull()
	if h.Dead() || h.Current() != 4 {
		t.Fatalf("heal full did not restore, current=%d", h.Current())
	}
	h.ApplyDamage(9, nil)
	if r.died != 2 {
		t.Fatalf("expected a second death after heal, got %d", r.died)
	}
}

func TestSetMaxHealsToNewMax(t *testing.T) {
	h := NewHealth(0)
	if h.Max() != 1 {
		t.Fatalf("expected max clamped to 1, got %d", h.Max())
	}
	h.SetMax(5)
	if h.Max() != 5 || h.Current() != 5 {
		t.Fatalf("expected 5/5, got %d/%d", h.Current(), h.Max())
	}
}

func TestSubscriptionReleaseDuringNotification(t *testing.T) {
	h := NewHealth(10)
	calls := 0
	var sub *Subscription
	sub = h.OnChanged(func(int) {
		calls++
		sub.Release()
	})
	other := 0
	h.OnChanged(func(int) { other++ })

	h.ApplyDamage(1, nil)
	h.ApplyDamage(1, nil)
	if calls != 1 {
		t.Fatalf("self-releasing handler called %d times", calls)
	}
	if other != 2 {
		t.Fatalf("sibling handler called %d times, want 2", other)
	}
	if sub.Active() {
		t.Fatal("released subscription still active")
	}
	sub.Release()
	var nilSub *Subscription
	nilSub.Release()
	if h.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber left, got %d", h.Subscribers())
	}
}
