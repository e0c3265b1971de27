package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered notification bus for external collaborators.
// Events emitted by listeners in tick N are delivered in tick N+1, in
// emission order, when the dispatch system calls SwapBuffers then
// DispatchAll. Scheduler callbacks for tick N+1 run before that swap, so
// their events ride in the same batch and carry Tick N+1.
//
// Emit and dispatch run on the game loop goroutine only. A nil *Bus drops
// every event, so components can run without one in tests.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []any
	back     []any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 64),
		back:     make([]any, 0, 64),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues an event into the back buffer (delivered next tick).
func Emit[T any](b *Bus, event T) {
	if b == nil {
		return
	}
	b.back = append(b.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SubscribeAll registers a handler receiving every event regardless of type.
func (b *Bus) SubscribeAll(fn func(any)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[nil] = append(b.handlers[nil], fn)
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	clear(b.back)
	b.back = b.back[:0]
}

// Queued returns the number of events waiting in the back buffer.
func (b *Bus) Queued() int { return len(b.back) }

// DispatchAll delivers all front-buffer events to their subscribed handlers.
// Events emitted by handlers land in the back buffer for the next tick.
func (b *Bus) DispatchAll() {
	b.mu.Lock()
	all := b.handlers[nil]
	b.mu.Unlock()
	for _, ev := range b.front {
		b.mu.Lock()
		handlers := b.handlers[reflect.TypeOf(ev)]
		b.mu.Unlock()
		for _, h := range handlers {
			h(ev)
		}
		for _, h := range all {
			h(ev)
		}
	}
	clear(b.front)
	b.front = b.front[:0]
}
