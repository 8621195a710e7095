package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"ecommerce-analytics/internal/domain"
	"ecommerce-analytics/internal/storage"
)

// OrderStore implements storage.OrderStore using PostgreSQL.
type OrderStore struct {
	pool *Pool
}

// NewOrderStore creates a new OrderStore.
func NewOrderStore(pool *Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// Compile-time interface check.
var _ storage.OrderStore = (*OrderStore)(nil)

const insertOrderQuery = `
	INSERT INTO orders (
		order_id, customer_id, product_name, category, order_date, unit_price, quantity, total_amount
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

const selectOrderColumns = `
	order_id, customer_id, product_name, category, order_date, unit_price, quantity, total_amount, created_at
`

// Insert adds a new order. Returns ErrDuplicateKey if order_id exists.
func (s *OrderStore) Insert(ctx context.Context, o *domain.Order) error {
	_, err := s.pool.Exec(ctx, insertOrderQuery,
		o.OrderID,
		o.CustomerID,
		o.ProductName,
		o.Category,
		o.OrderDate,
		o.UnitPrice,
		o.Quantity,
		o.TotalAmount,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// InsertBulk adds multiple orders atomically. Fails entire batch on any duplicate.
func (s *OrderStore) InsertBulk(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, o := range orders {
		_, err := tx.Exec(ctx, insertOrderQuery,
			o.OrderID,
			o.CustomerID,
			o.ProductName,
			o.Category,
			o.OrderDate,
			o.UnitPrice,
			o.Quantity,
			o.TotalAmount,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert order in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAll retrieves every order, ordered by order_date ASC, order_id ASC.
func (s *OrderStore) GetAll(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT ` + selectOrderColumns + `
		FROM orders
		ORDER BY order_date ASC, order_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// GetRecent retrieves the most recent orders, ordered by order_date DESC,
// order_id DESC.
func (s *OrderStore) GetRecent(ctx context.Context, limit int) ([]*domain.Order, error) {
	query := `
		SELECT ` + selectOrderColumns + `
		FROM orders
		ORDER BY order_date DESC, order_id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// GetByDateRange retrieves orders with order_date within [start, end] (inclusive).
func (s *OrderStore) GetByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	query := `
		SELECT ` + selectOrderColumns + `
		FROM orders
		WHERE order_date >= $1 AND order_date <= $2
		ORDER BY order_date ASC, order_id ASC
	`

	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("get orders by date range: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// Count returns the total number of stored orders.
func (s *OrderStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

// scanOrders scans multiple rows into a slice of Order.
func scanOrders(rows pgx.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order

	for rows.Next() {
		var o domain.Order

		err := rows.Scan(
			&o.OrderID,
			&o.CustomerID,
			&o.ProductName,
			&o.Category,
			&o.OrderDate,
			&o.UnitPrice,
			&o.Quantity,
			&o.TotalAmount,
			&o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}
