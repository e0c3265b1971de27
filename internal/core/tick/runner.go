package tick

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

type runnerEntry struct {
	listener Listener
	seq      uint64
	removed  bool
}

// Runner notifies listeners in phase order each tick. Within a phase the
// order is registration order, so the pass is reproducible across runs.
// Listeners added or removed while a pass is running take effect on the
// next tick.
type Runner struct {
	entries []*runnerEntry
	pending []*runnerEntry
	seq     uint64
	sorted  bool
	running bool
	log     *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	return &Runner{
		entries: make([]*runnerEntry, 0, 16),
		sorted:  true,
		log:     log,
	}
}

func (r *Runner) Register(l Listener) {
	r.seq++
	e := &runnerEntry{listener: l, seq: r.seq}
	if r.running {
		r.pending = append(r.pending, e)
		return
	}
	r.entries = append(r.entries, e)
	r.sorted = false
}

// Unregister removes every registration of l. Returns false if l was not registered.
func (r *Runner) Unregister(l Listener) bool {
	found := false
	for _, e := range r.entries {
		if e.listener == l && !e.removed {
			e.removed = true
			found = true
		}
	}
	for _, e := range r.pending {
		if e.listener == l && !e.removed {
			e.removed = true
			found = true
		}
	}
	if found && !r.running {
		r.compact()
	}
	return found
}

func (r *Runner) Len() int {
	n := 0
	for _, e := range r.entries {
		if !e.removed {
			n++
		}
	}
	for _, e := range r.pending {
		if !e.removed {
			n++
		}
	}
	return n
}

// Tick runs every listener once for t.
func (r *Runner) Tick(t Tick) {
	r.ensureSorted()
	r.running = true
	for _, e := range r.entries {
		if e.removed {
			continue
		}
		r.notify(e.listener, t)
	}
	r.running = false
	if len(r.pending) > 0 {
		r.entries = append(r.entries, r.pending...)
		r.pending = r.pending[:0]
		r.sorted = false
	}
	r.compact()
}

// notify isolates a single listener so one broken actor cannot stall the pass.
func (r *Runner) notify(l Listener, t Tick) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("tick listener panic",
				zap.Uint64("tick", uint64(t)),
				zap.Stringer("phase", l.Phase()),
				zap.String("listener", fmt.Sprintf("%T", l)),
				zap.Any("panic", p))
		}
	}()
	l.OnTick(t)
}

func (r *Runner) compact() {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if !e.removed {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = kept
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.entries, func(i, j int) bool {
			a, b := r.entries[i], r.entries[j]
			if a.listener.Phase() != b.listener.Phase() {
				return a.listener.Phase() < b.listener.Phase()
			}
			return a.seq < b.seq
		})
		r.sorted = true
	}
}
