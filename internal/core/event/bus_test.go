package event

import "testing"

type ping struct{ n int }
type pong struct{ s string }

func TestBusDeliversNextTickInEmissionOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(p ping) { got = append(got, "ping") })
	Subscribe(b, func(p pong) { got = append(got, "pong:"+p.s) })

	Emit(b, ping{1})
	Emit(b, pong{"a"})
	Emit(b, ping{2})

	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("events delivered before swap: %v", got)
	}
	b.SwapBuffers()
	b.DispatchAll()
	want := []string{"ping", "pong:a", "ping"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestBusHandlerEmitsIntoNextTick(t *testing.T) {
	b := NewBus()
	count := 0
	Subscribe(b, func(p ping) {
		count++
		if p.n < 3 {
			Emit(b, ping{p.n + 1})
		}
	})
	Emit(b, ping{1})
	for i := 0; i < 5; i++ {
		b.SwapBuffers()
		b.DispatchAll()
	}
	if count != 3 {
		t.Fatalf("expected chain of 3 deliveries, got %d", count)
	}
}

func TestBusSubscribeAll(t *testing.T) {
	b := NewBus()
	n := 0
	b.SubscribeAll(func(any) { n++ })
	Emit(b, ping{})
	Emit(b, pong{})
	b.SwapBuffers()
	b.DispatchAll()
	if n != 2 {
		t.Fatalf("expected 2 events, got %d", n)
	}
}

func TestNilBusDropsEvents(t *testing.T) {
	var b *Bus
	Emit(b, ping{}) // must not panic
}
