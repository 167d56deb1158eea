package order

import (
	"context"
	"fmt"

	"storely-be/internal/cart"
	"storely-be/internal/event"
	"storely-be/internal/logger"
	"storely-be/internal/metrics"

	"go.uber.org/zap"
)

type PlaceOrderParams struct {
	CustomerID    uint
	Shipping      ShippingDetails
	PaymentMethod string
}

type Service interface {
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*OrderWithTotal, error)
	CancelOrder(ctx context.Context, orderID uint) (*Order, error)
	GetOrderHistory(ctx context.Context, customerID uint) ([]HistoryEntry, error)
	GetOrderDetails(ctx context.Context, orderID uint) ([]DetailRow, error)

	// Admin order management.
	UpdateStatus(ctx context.Context, orderID uint, status string) error
	UpdatePaymentStatus(ctx context.Context, orderID uint, status string) error
}

type service struct {
	repo     Repository
	cartRepo cart.Repository
	notifier event.Notifier
}

func NewService(repo Repository, cartRepo cart.Repository, notifier event.Notifier) Service {
	return &service{
		repo:     repo,
		cartRepo: cartRepo,
		notifier: notifier,
	}
}

// PlaceOrder converts the customer's cart into a persisted order. The cart
// delete runs only after the order write succeeds; a failed delete is
// reported but never rolls back the already-placed order.
func (s *service) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*OrderWithTotal, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("customer_id", params.CustomerID),
	)

	if err := params.Shipping.Validate(); err != nil {
		return nil, err
	}
	if err := validatePaymentMethod(params.PaymentMethod); err != nil {
		return nil, err
	}

	c, err := s.cartRepo.FindByCustomer(ctx, params.CustomerID)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}
	if c == nil || len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Snapshot product identity, quantity and the current product price.
	// The order line price is immutable from here on.
	items := make([]OrderItem, 0, len(c.Items))
	for _, ci := range c.Items {
		items = append(items, OrderItem{
			ProductID: ci.ProductID,
			Quantity:  ci.Quantity,
			Price:     ci.Price,
		})
	}

	o := &Order{
		CustomerID:    params.CustomerID,
		Items:         items,
		Shipping:      params.Shipping,
		PaymentMethod: params.PaymentMethod,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}

	total, err := o.Total()
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.CreateOrder(ctx, o)
	if err != nil {
		return nil, err
	}

	// Best-effort cleanup: the order stands even when this fails, at the
	// cost of a reusable cart until the next placement.
	if err := s.cartRepo.DeleteByCustomer(ctx, params.CustomerID); err != nil {
		log.Warn("failed to delete cart after order placement",
			zap.Uint("order_id", saved.ID),
			zap.Error(err),
		)
	}

	placed := &OrderWithTotal{Order: saved, OrderTotal: total}

	metrics.OrdersPlaced.Inc()
	s.notifier.Emit(event.OrderCreated, event.OrderCreatedPayload{
		Action:  "create",
		Order:   placed,
		Message: fmt.Sprintf("New order placed with order id %d", saved.ID),
	})

	log.Info("order placed",
		zap.Uint("order_id", saved.ID),
		zap.String("order_total", total.StringFixed(2)),
	)

	return placed, nil
}

// CancelOrder applies the pending -> cancelled transition. Cancelling an
// already cancelled order succeeds without a write; cancelling from any
// other status is rejected.
func (s *service) CancelOrder(ctx context.Context, orderID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.Uint("order_id", orderID),
	)

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		log.Error("failed to load order", zap.Error(err))
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if o.Status == StatusCancelled {
		return o, nil
	}
	if !o.Status.CanCancel() {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, orderID, StatusCancelled); err != nil {
		return nil, err
	}
	o.Status = StatusCancelled

	metrics.OrdersCancelled.Inc()
	s.notifier.Emit(event.OrderCancelled, event.OrderCancelledPayload{
		OrderID: o.ID,
		Status:  string(o.Status),
		Message: fmt.Sprintf("order %d has been cancelled", o.ID),
	})

	log.Info("order cancelled")

	return o, nil
}

func (s *service) GetOrderHistory(ctx context.Context, customerID uint) ([]HistoryEntry, error) {
	return s.repo.FetchHistory(ctx, customerID)
}

func (s *service) GetOrderDetails(ctx context.Context, orderID uint) ([]DetailRow, error) {
	return s.repo.FetchDetail(ctx, orderID)
}

func (s *service) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	parsed, err := ParseStatus(status)
	if err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, orderID, parsed)
}

func (s *service) UpdatePaymentStatus(ctx context.Context, orderID uint, status string) error {
	parsed, err := ParsePaymentStatus(status)
	if err != nil {
		return err
	}
	return s.repo.UpdatePaymentStatus(ctx, orderID, parsed)
}
