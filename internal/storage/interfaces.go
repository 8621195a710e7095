package storage

import (
	"context"
	"time"

	"ecommerce-analytics/internal/domain"
)

// OrderStore provides access to orders storage. Implementations must
// return consistent snapshots per call so the analytics engine sees a
// stable order set.
type OrderStore interface {
	// Insert adds a new order. Returns ErrDuplicateKey if order_id exists.
	Insert(ctx context.Context, o *domain.Order) error

	// InsertBulk adds multiple orders atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, orders []*domain.Order) error

	// GetAll retrieves every order, ordered by order_date ASC, order_id ASC.
	GetAll(ctx context.Context) ([]*domain.Order, error)

	// GetRecent retrieves the most recent orders, ordered by order_date DESC,
	// order_id DESC, limited to limit rows.
	GetRecent(ctx context.Context, limit int) ([]*domain.Order, error)

	// GetByDateRange retrieves orders with order_date within [start, end]
	// (inclusive), ordered by order_date ASC, order_id ASC.
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Order, error)

	// Count returns the total number of stored orders.
	Count(ctx context.Context) (int, error)
}

// SnapshotStore provides access to analysis snapshot storage.
type SnapshotStore interface {
	// Insert adds a new snapshot. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, s *domain.AnalysisSnapshot) error

	// GetByRunID retrieves a snapshot by run ID. Returns ErrNotFound if not exists.
	GetByRunID(ctx context.Context, runID string) (*domain.AnalysisSnapshot, error)

	// GetLatest retrieves the most recently computed snapshot.
	// Returns ErrNotFound when no snapshot has been stored.
	GetLatest(ctx context.Context) (*domain.AnalysisSnapshot, error)
}
