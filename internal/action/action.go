package action

import "github.com/l1jgo/ticksim/internal/core/tick"

// State is an action's lifecycle state.
type State int

const (
	StateCreated State = iota
	StateActive
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Action is a one-shot, multi-tick task owned by exactly one Controller.
// Multi-tick behaviour lives entirely in "next eligible tick" fields checked
// on every OnTick; nothing suspends.
type Action interface {
	Kind() string
	Begin(now tick.Tick)
	OnTick(t tick.Tick)
	State() State
}

// Interrupter is implemented by actions that want to know when a newer
// action replaces them.
type Interrupter interface {
	Interrupt(t tick.Tick)
}

// Lifecycle is embedded by concrete actions for the Created → Active →
// Complete transitions. Complete is terminal.
type Lifecycle struct {
	state State
}

func (l *Lifecycle) State() State     { return l.state }
func (l *Lifecycle) IsComplete() bool { return l.state == StateComplete }

// Activate moves Created → Active. No effect in any other state.
func (l *Lifecycle) Activate() {
	if l.state == StateCreated {
		l.state = StateActive
	}
}

// Finish moves to Complete. Idempotent.
func (l *Lifecycle) Finish() { l.state = StateComplete }

// Interrupt completes the action when a newer one supersedes it.
func (l *Lifecycle) Interrupt(tick.Tick) { l.Finish() }

// Locator reports an actor's position on the horizontal plane.
type Locator interface {
	Location() (x, z float64)
}
