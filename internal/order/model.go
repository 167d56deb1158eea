package order

import (
	"strings"
	"time"

	"storely-be/internal/category"
	"storely-be/internal/money"
	"storely-be/internal/product"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow). This core only drives the
	// pending -> cancelled transition; the rest belong to admin order
	// management.
	StatusPending     OrderStatus = "pending"
	StatusConfirmed   OrderStatus = "confirmed"
	StatusReadyToShip OrderStatus = "ready_to_ship"
	StatusShipped     OrderStatus = "shipped"
	StatusDelivered   OrderStatus = "delivered"
	StatusReturned    OrderStatus = "returned"
	StatusCancelled   OrderStatus = "cancelled"

	// Payment statuses
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Statuses a cancellation may start from. Cancelling an already cancelled
// order is handled as an idempotent no-op, not through this table.
var cancellable = map[OrderStatus]bool{
	StatusPending: true,
}

func (s OrderStatus) CanCancel() bool {
	return cancellable[s]
}

func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(s)) {
	case StatusPending, StatusConfirmed, StatusReadyToShip,
		StatusShipped, StatusDelivered, StatusReturned, StatusCancelled:
		return OrderStatus(strings.ToLower(s)), nil
	default:
		return "", ErrInvalidStatus
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToLower(s)) {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return PaymentStatus(strings.ToLower(s)), nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}

// ShippingDetails is copied by value onto the order; later profile edits
// must not rewrite shipping history.
type ShippingDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// OrderItem keeps the price captured at order time. It never tracks the
// live product price again.
type OrderItem struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"order_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID            uint            `json:"id"`
	CustomerID    uint            `json:"customer_id"`
	Items         []OrderItem     `json:"items"`
	Shipping      ShippingDetails `json:"shipping_details"`
	PaymentMethod string          `json:"payment_method"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Total derives the order total from the line items. It is never stored:
// a persisted total could drift from the lines it summarizes.
func (o *Order) Total() (decimal.Decimal, error) {
	lines := make([]money.LineItem, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, money.LineItem{Quantity: item.Quantity, UnitPrice: item.Price})
	}
	return money.OrderTotal(lines)
}

// OrderWithTotal is the response/event view: the persisted order plus its
// computed total.
type OrderWithTotal struct {
	*Order
	OrderTotal decimal.Decimal `json:"order_total"`
}

// HistoryEntry is one row of a customer's order history, total computed at
// query time.
type HistoryEntry struct {
	OrderID   uint            `json:"order_id"`
	CreatedAt time.Time       `json:"created_at"`
	Status    OrderStatus     `json:"status"`
	Total     decimal.Decimal `json:"order_total"`
}

// DetailRow is one line item joined to its product and the product's
// category. Rows from different categories stay independent.
type DetailRow struct {
	Quantity int               `json:"quantity"`
	Price    decimal.Decimal   `json:"price"`
	Product  product.Product   `json:"product"`
	Category category.Category `json:"category"`
}

var recognizedPaymentMethods = map[string]bool{
	"card":          true,
	"cod":           true,
	"bank_transfer": true,
}

func (s ShippingDetails) Validate() error {
	if strings.TrimSpace(s.FullName) == "" ||
		strings.TrimSpace(s.Email) == "" ||
		strings.TrimSpace(s.Address) == "" {
		return ErrInvalidShipping
	}
	if !strings.Contains(s.Email, "@") {
		return ErrInvalidShipping
	}
	return nil
}

func validatePaymentMethod(method string) error {
	if !recognizedPaymentMethods[strings.ToLower(method)] {
		return ErrInvalidPaymentMethod
	}
	return nil
}
