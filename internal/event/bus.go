package event

import (
	"sync"

	"storely-be/internal/logger"
	"storely-be/internal/metrics"

	"go.uber.org/zap"
)

// Notifier is the fire-and-forget contract the lifecycle service emits
// through. Delivery carries no acknowledgment and never fails the
// triggering request.
type Notifier interface {
	Emit(name string, payload interface{})
}

// Bus is an in-process dispatcher. Business code publishes domain events
// locally; transport adapters (the websocket hub, in practice) subscribe
// and forward. Each subscriber runs on its own goroutine.
type Bus struct {
	mu          sync.RWMutex
	subscribers []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Emit builds and publishes an event. A panicking subscriber is recovered
// and logged; it never reaches the caller.
func (b *Bus) Emit(name string, payload interface{}) {
	b.Publish(New(name, payload))
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := make([]func(Event), len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	metrics.EventsPublished.Inc()

	for _, fn := range subs {
		go func(fn func(Event)) {
			defer func() {
				if r := recover(); r != nil {
					logger.L().Warn("event subscriber panicked",
						zap.String("event", e.Name),
						zap.Any("panic", r),
					)
				}
			}()
			fn(e)
		}(fn)
	}
}
