package tick

import "time"

// Cooldown turns a repeating action into a tick window: ready once the
// current tick reaches the stored next-ready tick.
type Cooldown struct {
	Ticks Tick // window length; values below 1 behave as 1
	next  Tick
}

func (c *Cooldown) Ready(now Tick) bool { return now >= c.next }

// Start opens a new window beginning at now.
func (c *Cooldown) Start(now Tick) {
	n := c.Ticks
	if n < 1 {
		n = 1
	}
	c.next = now + n
}

// Reset makes the cooldown ready at now.
func (c *Cooldown) Reset(now Tick) { c.next = now }

// Extend pushes the next-ready tick to at least until.
func (c *Cooldown) Extend(until Tick) {
	if until > c.next {
		c.next = until
	}
}

func (c *Cooldown) Next() Tick { return c.next }

// Remaining is the number of ticks until ready, 0 when ready.
func (c *Cooldown) Remaining(now Tick) Tick {
	if now >= c.next {
		return 0
	}
	return c.next - now
}

// RemainingDuration converts Remaining into wall time for display.
func (c *Cooldown) RemainingDuration(now Tick, tickDuration time.Duration) time.Duration {
	return time.Duration(c.Remaining(now)) * tickDuration
}
