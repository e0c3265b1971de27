package system

import (
	"github.com/l1jgo/ticksim/internal/core/event"
	"github.com/l1jgo/ticksim/internal/core/tick"
)

// EventDispatchSystem delivers last tick's notifications at the start of
// the next one, then announces the new tick. PhasePreUpdate.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() tick.Phase { return tick.PhasePreUpdate }

func (s *EventDispatchSystem) OnTick(t tick.Tick) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	event.Emit(s.bus, event.TickAdvanced{Tick: t})
}
