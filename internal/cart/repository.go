package cart

import (
	"context"
	"database/sql"
	"errors"

	"storely-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// FindByCustomer loads the customer's cart with the current product
	// price resolved per line. Returns (nil, nil) when the customer has
	// no cart rows.
	FindByCustomer(ctx context.Context, customerID uint) (*Cart, error)

	// DeleteByCustomer removes every cart row of the customer. Deleting an
	// absent cart is not an error.
	DeleteByCustomer(ctx context.Context, customerID uint) error

	UpsertItem(ctx context.Context, params UpsertItemParams) error
	SetItemQuantity(ctx context.Context, customerID, productID uint, quantity int) error
	RemoveItem(ctx context.Context, customerID, productID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByCustomer(ctx context.Context, customerID uint) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "FindByCustomer"),
		zap.Uint("customer_id", customerID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.product_id, p.name, c.quantity, p.price, c.created_at
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = $1
	`, customerID)
	if err != nil {
		log.Error("failed to query cart rows", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.Price,
			&item.AddedAt,
		); err != nil {
			log.Error("failed to scan cart row", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if len(items) == 0 {
		return nil, nil
	}

	return &Cart{CustomerID: customerID, Items: items}, nil
}

func (r *repository) DeleteByCustomer(ctx context.Context, customerID uint) error {
	// No RowsAffected check: clearing an already-absent cart must succeed.
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE customer_id = $1
	`, customerID)

	return err
}

func (r *repository) UpsertItem(ctx context.Context, params UpsertItemParams) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO carts (customer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = carts.quantity + EXCLUDED.quantity, updated_at = NOW()
	`, params.CustomerID, params.ProductID, params.Quantity)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
		return ErrProductNotFound
	}

	return err
}

func (r *repository) SetItemQuantity(ctx context.Context, customerID, productID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE customer_id = $2 AND product_id = $3
	`, quantity, customerID, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *repository) RemoveItem(ctx context.Context, customerID, productID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE customer_id = $1 AND product_id = $2
	`, customerID, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
