package action

import (
	"errors"

	"github.com/l1jgo/ticksim/internal/core/ecs"
	"github.com/l1jgo/ticksim/internal/core/event"
	"github.com/l1jgo/ticksim/internal/core/tick"
	"go.uber.org/zap"
)

// ErrNilAction is returned by Start when no action is supplied.
var ErrNilAction = errors.New("action: nil action")

// Controller owns zero or one active Action for one actor and advances it
// once per tick. Accessed only from the game loop goroutine.
type Controller struct {
	actor   ecs.EntityID
	current Action
	now     func() tick.Tick
	bus     *event.Bus
	log     *zap.Logger
}

func NewController(actor ecs.EntityID, now func() tick.Tick, bus *event.Bus, log *zap.Logger) *Controller {
	return &Controller{actor: actor, now: now, bus: bus, log: log}
}

func (c *Controller) Phase() tick.Phase { return tick.PhaseUpdate }

// Current returns the active action, or nil.
func (c *Controller) Current() Action { return c.current }

// Start replaces any current action and begins a. A superseded action that
// implements Interrupter is told about it; others are dropped silently.
// Either way a superseded action never reports ActionCompleted.
func (c *Controller) Start(a Action) error {
	if a == nil {
		return ErrNilAction
	}
	now := c.now()
	if prev := c.current; prev != nil && prev != a {
		if in, ok := prev.(Interrupter); ok {
			in.Interrupt(now)
		}
		c.log.Debug("action superseded",
			zap.Stringer("actor", c.actor),
			zap.String("previous", prev.Kind()),
			zap.String("next", a.Kind()))
	}
	c.current = a
	c.log.Debug("action started",
		zap.Stringer("actor", c.actor),
		zap.String("kind", a.Kind()),
		zap.Uint64("tick", uint64(now)))
	a.Begin(now)
	return nil
}

// Cancel clears the current action without notifying it.
func (c *Controller) Cancel() {
	if c.current == nil {
		return
	}
	c.log.Debug("action cancelled",
		zap.Stringer("actor", c.actor),
		zap.String("kind", c.current.Kind()))
	c.current = nil
}

func (c *Controller) OnTick(t tick.Tick) {
	a := c.current
	if a == nil {
		return
	}
	a.OnTick(t)
	// The action may have been replaced from inside its own OnTick.
	if c.current != a || a.State() != StateComplete {
		return
	}
	c.current = nil
	c.log.Debug("action completed",
		zap.Stringer("actor", c.actor),
		zap.String("kind", a.Kind()),
		zap.Uint64("tick", uint64(t)))
	event.Emit(c.bus, event.ActionCompleted{Tick: t, Actor: c.actor, Kind: a.Kind()})
}
