package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	var got []Event

	for i := 0; i < 2; i++ {
		bus.Subscribe(func(e Event) {
			mu.Lock()
			got = append(got, e)
			mu.Unlock()
			wg.Done()
		})
	}

	bus.Emit(OrderCreated, OrderCreatedPayload{Action: "create", Message: "new order"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscribers were not notified in time")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, OrderCreated, e.Name)
		assert.NotEqual(t, [16]byte{}, [16]byte(e.ID))
		assert.False(t, e.OccurredAt.IsZero())
	}
}

func TestBus_PanickingSubscriberIsSwallowed(t *testing.T) {
	bus := NewBus()

	delivered := make(chan Event, 1)

	bus.Subscribe(func(e Event) {
		panic("subscriber blew up")
	})
	bus.Subscribe(func(e Event) {
		delivered <- e
	})

	bus.Emit(OrderCancelled, OrderCancelledPayload{OrderID: 5, Status: "cancelled"})

	select {
	case e := <-delivered:
		assert.Equal(t, OrderCancelled, e.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("healthy subscriber was not notified")
	}
}

func TestBus_EmitWithoutSubscribers(t *testing.T) {
	bus := NewBus()

	// Must not block or panic.
	bus.Emit(OrderCreated, nil)
}
