package combat

// Subscription is the token returned by every Health notification hook.
// The holder must Release it on retarget or teardown; nothing is cleaned
// up automatically.
type Subscription struct {
	release func()
}

// Release detaches the handler. Safe on nil and safe to call twice.
func (s *Subscription) Release() {
	if s == nil || s.release == nil {
		return
	}
	s.release()
	s.release = nil
}

// Active reports whether the handler is still attached.
func (s *Subscription) Active() bool {
	return s != nil && s.release != nil
}

type hook[F any] struct {
	fn       F
	released bool
}

// hookList delivers to a snapshot, so handlers may subscribe or release
// (including themselves) while a notification is being delivered.
type hookList[F any] struct {
	hooks []*hook[F]
}

func (l *hookList[F]) add(fn F) *Subscription {
	h := &hook[F]{fn: fn}
	l.hooks = append(l.hooks, h)
	return &Subscription{release: func() {
		h.released = true
		kept := make([]*hook[F], 0, len(l.hooks))
		for _, o := range l.hooks {
			if !o.released {
				kept = append(kept, o)
			}
		}
		l.hooks = kept
	}}
}

func (l *hookList[F]) each(call func(F)) {
	if len(l.hooks) == 0 {
		return
	}
	snapshot := make([]*hook[F], len(l.hooks))
	copy(snapshot, l.hooks)
	for _, h := range snapshot {
		if h.released {
			continue
		}
		call(h.fn)
	}
}

func (l *hookList[F]) len() int { return len(l.hooks) }
