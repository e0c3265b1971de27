package tick

import (
	"errors"

	"go.uber.org/zap"
)

// ErrNilWork is returned by Schedule when no callback is supplied.
var ErrNilWork = errors.New("tick: nil scheduled work")

type scheduled struct {
	work      func(Tick)
	target    Tick
	interval  Tick
	cancelled bool
	done      bool // fired (one-shot), cancelled, or removed after a panic
}

// Handle is the only external reference to a scheduled callback.
type Handle struct {
	s *scheduled
}

// Cancel stops the callback from firing again. Safe to call more than once
// and after the callback has already fired.
func (h *Handle) Cancel() {
	if h == nil || h.s == nil {
		return
	}
	h.s.cancelled = true
	h.s.done = true
	h.s = nil
}

// Pending reports whether the callback can still fire.
func (h *Handle) Pending() bool {
	return h != nil && h.s != nil && !h.s.done
}

// Scheduler defers work to future ticks. Owned by the game loop goroutine.
//
// A callback fires on the first tick at or after its target, so a delay of
// N means "at least N ticks from now".
type Scheduler struct {
	now     func() Tick
	entries []*scheduled
	log     *zap.Logger
}

// NewScheduler creates a scheduler reading the current tick from now.
func NewScheduler(now func() Tick, log *zap.Logger) *Scheduler {
	return &Scheduler{
		now:     now,
		entries: make([]*scheduled, 0, 64),
		log:     log,
	}
}

// Schedule queues work to run delayTicks from now (minimum 1), then every
// repeatTicks if repeatTicks > 0.
func (s *Scheduler) Schedule(work func(Tick), delayTicks, repeatTicks int64) (*Handle, error) {
	if work == nil {
		return nil, ErrNilWork
	}
	if delayTicks < 1 {
		delayTicks = 1
	}
	if repeatTicks < 0 {
		repeatTicks = 0
	}
	e := &scheduled{
		work:     work,
		target:   s.now() + Tick(delayTicks),
		interval: Tick(repeatTicks),
	}
	s.entries = append(s.entries, e)
	return &Handle{s: e}, nil
}

// Pending returns the number of callbacks still able to fire.
func (s *Scheduler) Pending() int {
	n := 0
	for _, e := range s.entries {
		if !e.done {
			n++
		}
	}
	return n
}

// OnTick runs every due callback in scheduling order. Work scheduled from
// inside a callback is never due in the same pass since its target is at
// least t+1.
func (s *Scheduler) OnTick(t Tick) {
	n := len(s.entries)
	for i := 0; i < n; i++ {
		e := s.entries[i]
		if e.done || t < e.target {
			continue
		}
		if e.interval > 0 {
			e.target += e.interval
		} else {
			e.done = true
		}
		s.invoke(e, t)
	}

	kept := s.entries[:0]
	for _, e := range s.entries {
		if !e.done {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = kept
}

func (s *Scheduler) invoke(e *scheduled, t Tick) {
	defer func() {
		if p := recover(); p != nil {
			e.done = true
			s.log.Error("scheduled callback panic",
				zap.Uint64("tick", uint64(t)),
				zap.Any("panic", p))
		}
	}()
	e.work(t)
}
