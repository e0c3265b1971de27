package tick

import (
	"time"

	"go.uber.org/zap"
)

// DefaultDuration is the classic 600ms game tick.
const DefaultDuration = 600 * time.Millisecond

// Clock converts elapsed wall time into discrete ticks. Each tick runs the
// scheduler first, then the listener runner.
//
// Accessed only from the game loop goroutine; no locks needed.
type Clock struct {
	duration   time.Duration
	maxCatchUp int
	remainder  time.Duration
	current    Tick

	scheduler *Scheduler
	runner    *Runner
	wrap      func(t Tick, pass func())
	log       *zap.Logger
}

// NewClock creates a clock firing one tick per duration. maxCatchUp bounds
// the ticks fired by a single Advance call; 0 disables the bound.
//
// Precondition: duration must be > 0.
func NewClock(duration time.Duration, maxCatchUp int, log *zap.Logger) *Clock {
	if duration <= 0 {
		panic("tick.NewClock: duration must be > 0")
	}
	if maxCatchUp < 0 {
		maxCatchUp = 0
	}
	c := &Clock{
		duration:   duration,
		maxCatchUp: maxCatchUp,
		runner:     NewRunner(log),
		log:        log,
	}
	c.scheduler = NewScheduler(c.Current, log)
	return c
}

func (c *Clock) Current() Tick            { return c.current }
func (c *Clock) Duration() time.Duration  { return c.duration }
func (c *Clock) Scheduler() *Scheduler    { return c.scheduler }
func (c *Clock) Remainder() time.Duration { return c.remainder }

// Register adds a listener. Order: phase first, then registration order.
func (c *Clock) Register(l Listener) { c.runner.Register(l) }

// Unregister removes a listener; effective from the next tick when called mid-pass.
func (c *Clock) Unregister(l Listener) bool { return c.runner.Unregister(l) }

// Listeners returns the number of registered listeners.
func (c *Clock) Listeners() int { return c.runner.Len() }

// SetPassWrapper installs a hook around each tick pass (tracing).
func (c *Clock) SetPassWrapper(wrap func(t Tick, pass func())) { c.wrap = wrap }

// Advance accumulates elapsed time and fires every whole tick it covers,
// up to maxCatchUp. When the bound is hit the remaining whole-tick backlog
// is dropped and only the sub-tick remainder is kept. Returns the number of
// ticks fired.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		c.remainder += elapsed
	}
	fired := 0
	for c.remainder >= c.duration {
		if c.maxCatchUp > 0 && fired >= c.maxCatchUp {
			dropped := c.remainder / c.duration
			c.remainder -= dropped * c.duration
			c.log.Warn("tick catch-up capped",
				zap.Int("fired", fired),
				zap.Int64("dropped", int64(dropped)),
				zap.Uint64("tick", uint64(c.current)))
			break
		}
		c.remainder -= c.duration
		c.Step()
		fired++
	}
	return fired
}

// Step fires exactly one tick without consuming accumulated time.
func (c *Clock) Step() Tick {
	c.current++
	t := c.current
	pass := func() {
		c.scheduler.OnTick(t)
		c.runner.Tick(t)
	}
	if c.wrap != nil {
		c.wrap(t, pass)
	} else {
		pass()
	}
	return t
}

// TimeUntilNextTick returns duration - remainder, never negative.
func (c *Clock) TimeUntilNextTick() time.Duration {
	d := c.duration - c.remainder
	if d < 0 {
		return 0
	}
	return d
}

// TicksFor converts a wall duration to whole ticks, rounding up, minimum 1.
func (c *Clock) TicksFor(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	n := int64((d + c.duration - 1) / c.duration)
	if n < 1 {
		n = 1
	}
	return n
}
