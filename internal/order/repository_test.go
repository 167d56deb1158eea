package order

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepository(db), mock, func() { db.Close() }
}

func sampleOrder() *Order {
	return &Order{
		CustomerID: 1,
		Items: []OrderItem{
			{ProductID: 11, Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{ProductID: 12, Quantity: 1, Price: decimal.RequireFromString("5.50")},
		},
		Shipping: ShippingDetails{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			Address:  "12 Analytical Way, London",
		},
		PaymentMethod: "card",
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}
}

func TestRepository_CreateOrder(t *testing.T) {
	ctx := context.Background()

	insertOrder := regexp.QuoteMeta(`
		INSERT INTO orders (customer_id, full_name, email, address, payment_method, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`)
	insertItem := regexp.QuoteMeta(`
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`)

	t.Run("Success", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		o := sampleOrder()
		createdAt := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(insertOrder).
			WithArgs(o.CustomerID, o.Shipping.FullName, o.Shipping.Email, o.Shipping.Address,
				o.PaymentMethod, o.Status, o.PaymentStatus).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(100, createdAt))
		mock.ExpectQuery(insertItem).
			WithArgs(100, o.Items[0].ProductID, o.Items[0].Quantity, o.Items[0].Price).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(insertItem).
			WithArgs(100, o.Items[1].ProductID, o.Items[1].Quantity, o.Items[1].Price).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectCommit()

		saved, err := repo.CreateOrder(ctx, o)

		require.NoError(t, err)
		assert.Equal(t, uint(100), saved.ID)
		assert.Len(t, saved.Items, 2)
		assert.Equal(t, uint(100), saved.Items[0].OrderID)
		assert.Equal(t, uint(1), saved.Items[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnItemFailure", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		o := sampleOrder()

		mock.ExpectBegin()
		mock.ExpectQuery(insertOrder).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(100, time.Now()))
		mock.ExpectQuery(insertItem).
			WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		_, err := repo.CreateOrder(ctx, o)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnOrderInsertFailure", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectQuery(insertOrder).WillReturnError(errors.New("db down"))
		mock.ExpectRollback()

		_, err := repo.CreateOrder(ctx, sampleOrder())

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	selectOrder := regexp.QuoteMeta(`
		SELECT id, customer_id, full_name, email, address, payment_method, status, payment_status, created_at
		FROM orders
		WHERE id = $1
	`)
	selectItems := regexp.QuoteMeta(`
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
	`)

	t.Run("Found", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		mock.ExpectQuery(selectOrder).
			WithArgs(uint(100)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "customer_id", "full_name", "email", "address",
				"payment_method", "status", "payment_status", "created_at",
			}).AddRow(100, 1, "Ada Lovelace", "ada@example.com", "12 Analytical Way, London",
				"card", "pending", "pending", time.Now()))
		mock.ExpectQuery(selectItems).
			WithArgs(uint(100)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "price"}).
				AddRow(1, 100, 11, 2, "10.00").
				AddRow(2, 100, 12, 1, "5.50"))

		o, err := repo.GetByID(ctx, 100)

		require.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, StatusPending, o.Status)
		assert.Len(t, o.Items, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		mock.ExpectQuery(selectOrder).
			WithArgs(uint(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		o, err := repo.GetByID(ctx, 404)

		assert.NoError(t, err)
		assert.Nil(t, o)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	updateStatus := regexp.QuoteMeta(`
		UPDATE orders
		SET status = $1
		WHERE id = $2
	`)

	t.Run("Success", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		mock.ExpectExec(updateStatus).
			WithArgs(StatusCancelled, uint(100)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, 100, StatusCancelled))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		mock.ExpectExec(updateStatus).
			WithArgs(StatusShipped, uint(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 404, StatusShipped)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_UpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()

	updatePayment := regexp.QuoteMeta(`
		UPDATE orders
		SET payment_status = $1
		WHERE id = $2
	`)

	t.Run("Success", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		mock.ExpectExec(updatePayment).
			WithArgs(PaymentPaid, uint(100)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePaymentStatus(ctx, 100, PaymentPaid))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		mock.ExpectExec(updatePayment).
			WithArgs(PaymentRefunded, uint(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePaymentStatus(ctx, 404, PaymentRefunded)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_FetchHistory(t *testing.T) {
	ctx := context.Background()

	historyQuery := regexp.QuoteMeta(`
		SELECT o.id, o.created_at, o.status, COALESCE(SUM(oi.quantity * oi.price), 0) AS order_total
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.customer_id = $1
		GROUP BY o.id, o.created_at, o.status
		ORDER BY o.created_at DESC
	`)

	t.Run("Success", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		newer := time.Now()
		older := newer.Add(-24 * time.Hour)

		mock.ExpectQuery(historyQuery).
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "status", "order_total"}).
				AddRow(3, newer, "pending", "25.50").
				AddRow(1, older, "cancelled", "9.99"))

		entries, err := repo.FetchHistory(ctx, 1)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, uint(3), entries[0].OrderID)
		assert.Equal(t, "25.50", entries[0].Total.StringFixed(2))
		assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoOrders", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		mock.ExpectQuery(historyQuery).
			WithArgs(uint(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "status", "order_total"}))

		entries, err := repo.FetchHistory(ctx, 2)

		assert.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestRepository_FetchDetail(t *testing.T) {
	ctx := context.Background()

	detailQuery := regexp.QuoteMeta(`
		SELECT
			oi.quantity,
			oi.price,
			p.id, p.name, p.description, p.price, p.category_id,
			c.id, c.name, c.description
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE oi.order_id = $1
	`)

	columns := []string{
		"quantity", "price",
		"p_id", "p_name", "p_description", "p_price", "p_category_id",
		"c_id", "c_name", "c_description",
	}

	t.Run("Success", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		mock.ExpectQuery(detailQuery).
			WithArgs(uint(100)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(2, "10.00", 11, "Mechanical Keyboard", "Tenkeyless", "10.00", 5, 5, "Peripherals", "Desk gear").
				AddRow(1, "5.50", 12, "Desk Mat", "Large", "5.50", 5, 5, "Peripherals", "Desk gear"))

		rows, err := repo.FetchDetail(ctx, 100)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Mechanical Keyboard", rows[0].Product.Name)
		assert.Equal(t, "Peripherals", rows[0].Category.Name)
		assert.Equal(t, 2, rows[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock, closeFn := newMockRepo(t)
		defer closeFn()

		mock.ExpectQuery(detailQuery).
			WithArgs(uint(404)).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.FetchDetail(ctx, 404)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
