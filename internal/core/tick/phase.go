package tick

import "math"

// Tick is one fixed-duration simulation step. The first tick fired by a
// Clock is 1; 0 means "before the first tick".
type Tick uint64

// Never is the sentinel for "no tick is ever eligible".
const Never Tick = math.MaxUint64

// Phase defines execution ordering within a single tick.
// Listeners in the same phase run in registration order.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: dispatch last tick's notifications
	PhaseUpdate                  // 1: action controllers, combatants
	PhasePostUpdate              // 2: resource nodes, movers
	PhasePersist                 // 3: event log flush
	PhaseCleanup                 // 4: destroy queued actors
)

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post_update"
	case PhasePersist:
		return "persist"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// Listener is notified once per tick, after the scheduler has run.
type Listener interface {
	Phase() Phase
	OnTick(t Tick)
}

type listenerFunc struct {
	phase Phase
	fn    func(Tick)
}

func (l *listenerFunc) Phase() Phase  { return l.phase }
func (l *listenerFunc) OnTick(t Tick) { l.fn(t) }

// Func adapts a plain function into a Listener for the given phase.
func Func(phase Phase, fn func(Tick)) Listener {
	return &listenerFunc{phase: phase, fn: fn}
}
