package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecommerce-analytics/internal/domain"
	"ecommerce-analytics/internal/storage"
)

// SnapshotStore implements storage.SnapshotStore using ClickHouse.
// A snapshot spans two tables: one analysis_runs row plus one
// monthly_revenue row per calendar month.
type SnapshotStore struct {
	conn *Conn
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(conn *Conn) *SnapshotStore {
	return &SnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// Insert adds a new snapshot. Returns ErrDuplicateKey if run_id exists.
func (s *SnapshotStore) Insert(ctx context.Context, snap *domain.AnalysisSnapshot) error {
	if snap == nil || snap.RunID == "" {
		return storage.ErrInvalidInput
	}

	// MergeTree does not enforce uniqueness; check explicitly to keep
	// append-only semantics.
	exists, err := s.exists(ctx, snap.RunID)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	err = s.conn.Exec(ctx, `
		INSERT INTO analysis_runs (
			run_id, computed_at, total_orders, total_revenue, avg_order_value, unique_customers, skipped_records
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		snap.RunID,
		snap.ComputedAt,
		uint64(snap.Metrics.TotalOrders),
		snap.Metrics.TotalRevenue,
		snap.Metrics.AvgOrderValue,
		uint64(snap.Metrics.UniqueCustomers),
		uint64(snap.SkippedRecords),
	)
	if err != nil {
		return fmt.Errorf("insert analysis run: %w", err)
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO monthly_revenue (run_id, month, revenue, order_count, growth)
	`)
	if err != nil {
		return fmt.Errorf("prepare monthly batch: %w", err)
	}
	for _, m := range snap.Monthly {
		if err := batch.Append(snap.RunID, m.Month, m.Revenue, uint64(m.OrderCount), m.Growth); err != nil {
			return fmt.Errorf("append monthly row: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send monthly batch: %w", err)
	}

	return nil
}

// GetByRunID retrieves a snapshot by run ID. Returns ErrNotFound if not exists.
func (s *SnapshotStore) GetByRunID(ctx context.Context, runID string) (*domain.AnalysisSnapshot, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT run_id, computed_at, total_orders, total_revenue, avg_order_value, unique_customers, skipped_records
		FROM analysis_runs
		WHERE run_id = ?
	`, runID)

	snap, err := scanSnapshotRow(row)
	if err != nil {
		return nil, err
	}

	monthly, err := s.loadMonthly(ctx, runID)
	if err != nil {
		return nil, err
	}
	snap.Monthly = monthly
	return snap, nil
}

// GetLatest retrieves the most recently computed snapshot.
func (s *SnapshotStore) GetLatest(ctx context.Context) (*domain.AnalysisSnapshot, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT run_id, computed_at, total_orders, total_revenue, avg_order_value, unique_customers, skipped_records
		FROM analysis_runs
		ORDER BY computed_at DESC, run_id DESC
		LIMIT 1
	`)

	snap, err := scanSnapshotRow(row)
	if err != nil {
		return nil, err
	}

	monthly, err := s.loadMonthly(ctx, snap.RunID)
	if err != nil {
		return nil, err
	}
	snap.Monthly = monthly
	return snap, nil
}

// rowScanner matches both driver.Row and driver.Rows scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshotRow(row rowScanner) (*domain.AnalysisSnapshot, error) {
	var (
		snap            domain.AnalysisSnapshot
		totalOrders     uint64
		uniqueCustomers uint64
		skipped         uint64
	)

	err := row.Scan(
		&snap.RunID,
		&snap.ComputedAt,
		&totalOrders,
		&snap.Metrics.TotalRevenue,
		&snap.Metrics.AvgOrderValue,
		&uniqueCustomers,
		&skipped,
	)
	if err != nil {
		if isNoRowsError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("scan analysis run: %w", err)
	}

	snap.Metrics.TotalOrders = int(totalOrders)
	snap.Metrics.UniqueCustomers = int(uniqueCustomers)
	snap.SkippedRecords = int(skipped)
	return &snap, nil
}

func (s *SnapshotStore) loadMonthly(ctx context.Context, runID string) ([]domain.MonthlyTrend, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT month, revenue, order_count, growth
		FROM monthly_revenue
		WHERE run_id = ?
		ORDER BY month ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query monthly revenue: %w", err)
	}
	defer rows.Close()

	var monthly []domain.MonthlyTrend
	for rows.Next() {
		var (
			m     domain.MonthlyTrend
			count uint64
		)
		if err := rows.Scan(&m.Month, &m.Revenue, &count, &m.Growth); err != nil {
			return nil, fmt.Errorf("scan monthly row: %w", err)
		}
		m.OrderCount = int(count)
		monthly = append(monthly, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly rows: %w", err)
	}
	return monthly, nil
}

func (s *SnapshotStore) exists(ctx context.Context, runID string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `
		SELECT count() FROM analysis_runs WHERE run_id = ?
	`, runID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// isNoRowsError checks whether a QueryRow scan found no rows.
func isNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
