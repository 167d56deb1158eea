package cart

import "context"

// Service defines the cart-management logic consumed by the HTTP layer.
// Order placement talks to the Repository directly; it only needs the
// find/delete contract.
type Service interface {
	GetCart(ctx context.Context, customerID uint) (*Cart, error)
	AddItem(ctx context.Context, params UpsertItemParams) error
	UpdateQuantity(ctx context.Context, customerID, productID uint, quantity int) error
	RemoveItem(ctx context.Context, customerID, productID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetCart returns the customer's cart, or an empty cart when none exists.
func (s *service) GetCart(ctx context.Context, customerID uint) (*Cart, error) {
	c, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &Cart{CustomerID: customerID, Items: []Item{}}, nil
	}
	return c, nil
}

func (s *service) AddItem(ctx context.Context, params UpsertItemParams) error {
	if params.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.UpsertItem(ctx, params)
}

// UpdateQuantity sets the line quantity; zero or negative removes the line.
func (s *service) UpdateQuantity(ctx context.Context, customerID, productID uint, quantity int) error {
	if quantity <= 0 {
		return s.repo.RemoveItem(ctx, customerID, productID)
	}
	return s.repo.SetItemQuantity(ctx, customerID, productID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, customerID, productID uint) error {
	return s.repo.RemoveItem(ctx, customerID, productID)
}
