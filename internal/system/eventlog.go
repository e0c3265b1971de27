package system

import (
	"context"
	"time"

	"github.com/l1jgo/ticksim/internal/core/event"
	"github.com/l1jgo/ticksim/internal/core/tick"
	"github.com/l1jgo/ticksim/internal/persist"
	"go.uber.org/zap"
)

// EventWriter persists a batch of event records.
type EventWriter interface {
	WriteEvents(ctx context.Context, records []persist.EventRecord) error
}

// maxBuffered bounds memory when the writer keeps failing.
const maxBuffered = 10000

// EventLogSystem collects every dispatched notification and flushes them
// to the writer every N ticks. PhasePersist.
type EventLogSystem struct {
	writer   EventWriter
	log      *zap.Logger
	interval int
	timeout  time.Duration

	pending   []persist.EventRecord
	lastTick  tick.Tick
	seq       int
	tickCount int
	dropped   int
}

func NewEventLogSystem(bus *event.Bus, writer EventWriter, log *zap.Logger, intervalTicks int, timeout time.Duration) *EventLogSystem {
	if intervalTicks < 1 {
		intervalTicks = 1
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	s := &EventLogSystem{
		writer:   writer,
		log:      log,
		interval: intervalTicks,
		timeout:  timeout,
		pending:  make([]persist.EventRecord, 0, 256),
	}
	bus.SubscribeAll(s.collect)
	return s
}

func (s *EventLogSystem) Phase() tick.Phase { return tick.PhasePersist }

func (s *EventLogSystem) collect(ev any) {
	rec, ok := persist.RecordFor(ev)
	if !ok {
		return
	}
	if rec.Tick != s.lastTick {
		s.lastTick = rec.Tick
		s.seq = 0
	}
	rec.Seq = s.seq
	s.seq++
	if len(s.pending) >= maxBuffered {
		s.dropped++
		return
	}
	s.pending = append(s.pending, rec)
}

func (s *EventLogSystem) OnTick(_ tick.Tick) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Flush()
}

// Flush writes everything buffered so far. Called on graceful shutdown too.
func (s *EventLogSystem) Flush() {
	if s.dropped > 0 {
		s.log.Warn("event log buffer overflow", zap.Int("dropped", s.dropped))
		s.dropped = 0
	}
	if len(s.pending) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.writer.WriteEvents(ctx, s.pending); err != nil {
		s.log.Error("event log flush failed", zap.Int("records", len(s.pending)), zap.Error(err))
		return // keep the batch for the next attempt
	}
	s.log.Debug("event log flushed", zap.Int("records", len(s.pending)))
	s.pending = s.pending[:0]
}

// Pending returns the number of buffered records.
func (s *EventLogSystem) Pending() int { return len(s.pending) }
