package event

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle event names.
const (
	OrderCreated   = "order.created"
	OrderCancelled = "order.cancelled"
)

type Event struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func New(name string, payload interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Name:       name,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// OrderCreatedPayload mirrors the shape dashboards already consume.
type OrderCreatedPayload struct {
	Action  string      `json:"action"`
	Order   interface{} `json:"order"`
	Message string      `json:"message"`
}

type OrderCancelledPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
