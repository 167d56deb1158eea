package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

// Dec is used by gauges such as the connected websocket client count.
func (c *Counter) Dec() {
	atomic.AddUint64(&c.value, ^uint64(0))
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Process-wide counters, served by GET /metrics.
var (
	OrdersPlaced     Counter
	OrdersCancelled  Counter
	EventsPublished  Counter
	WebsocketClients Counter
)

func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"orders_placed":     OrdersPlaced.Load(),
		"orders_cancelled":  OrdersCancelled.Load(),
		"events_published":  EventsPublished.Load(),
		"websocket_clients": WebsocketClients.Load(),
	}
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
