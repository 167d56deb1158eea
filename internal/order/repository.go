package order

import (
	"context"
	"database/sql"
	"time"

	"storely-be/internal/logger"
	"storely-be/internal/metrics"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrder persists the order and its line items in one transaction.
	// On failure no partial order remains visible.
	CreateOrder(ctx context.Context, o *Order) (*Order, error)

	// GetByID returns (nil, nil) when the order does not exist.
	GetByID(ctx context.Context, orderID uint) (*Order, error)

	UpdateStatus(ctx context.Context, orderID uint, status OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID uint, status PaymentStatus) error

	// FetchHistory computes per-order totals from the embedded line items at
	// query time, most recent order first.
	FetchHistory(ctx context.Context, customerID uint) ([]HistoryEntry, error)

	// FetchDetail returns one joined row per line item. Zero rows means the
	// order does not exist.
	FetchDetail(ctx context.Context, orderID uint) ([]DetailRow, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrder(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.Uint("customer_id", o.CustomerID),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	var orderID uint
	var createdAt time.Time
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, full_name, email, address, payment_method, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		o.CustomerID,
		o.Shipping.FullName,
		o.Shipping.Email,
		o.Shipping.Address,
		o.PaymentMethod,
		o.Status,
		o.PaymentStatus,
	).Scan(&orderID, &createdAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	items := make([]OrderItem, 0, len(o.Items))
	for i, item := range o.Items {
		var itemID uint
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, orderID, item.ProductID, item.Quantity, item.Price).Scan(&itemID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		item.ID = itemID
		item.OrderID = orderID
		items = append(items, item)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return nil, err
	}
	committed = true

	saved := *o
	saved.ID = orderID
	saved.CreatedAt = createdAt
	saved.Items = items

	log.Info("order persisted", zap.Uint("order_id", orderID))

	return &saved, nil
}

func (r *repository) GetByID(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, full_name, email, address, payment_method, status, payment_status, created_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID,
		&o.CustomerID,
		&o.Shipping.FullName,
		&o.Shipping.Email,
		&o.Shipping.Address,
		&o.PaymentMethod,
		&o.Status,
		&o.PaymentStatus,
		&o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uint, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, orderID uint, status PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = $1
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *repository) FetchHistory(ctx context.Context, customerID uint) ([]HistoryEntry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "FetchHistory"),
		zap.Uint("customer_id", customerID),
	)

	timer := metrics.StartTimer()

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.created_at, o.status, COALESCE(SUM(oi.quantity * oi.price), 0) AS order_total
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.customer_id = $1
		GROUP BY o.id, o.created_at, o.status
		ORDER BY o.created_at DESC
	`, customerID)
	if err != nil {
		log.Error("failed to query order history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.OrderID, &e.CreatedAt, &e.Status, &e.Total); err != nil {
			log.Error("failed to scan history row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	log.Info("order history fetched",
		zap.Int("count", len(entries)),
		zap.Duration("duration", timer.Duration()),
	)

	return entries, nil
}

func (r *repository) FetchDetail(ctx context.Context, orderID uint) ([]DetailRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			oi.quantity,
			oi.price,
			p.id, p.name, p.description, p.price, p.category_id,
			c.id, c.name, c.description
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE oi.order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []DetailRow
	for rows.Next() {
		var d DetailRow
		if err := rows.Scan(
			&d.Quantity,
			&d.Price,
			&d.Product.ID,
			&d.Product.Name,
			&d.Product.Description,
			&d.Product.Price,
			&d.Product.CategoryID,
			&d.Category.ID,
			&d.Category.Name,
			&d.Category.Description,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(details) == 0 {
		return nil, ErrOrderNotFound
	}

	return details, nil
}
