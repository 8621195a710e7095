package clickhouse

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-analytics/internal/domain"
	"ecommerce-analytics/internal/storage"
)

func makeSnapshot(runID string, computedAt time.Time) *domain.AnalysisSnapshot {
	growth := 52.5
	return &domain.AnalysisSnapshot{
		RunID:      runID,
		ComputedAt: computedAt,
		Metrics: domain.BusinessMetrics{
			TotalRevenue:    decimal.RequireFromString("2525.00"),
			TotalOrders:     3,
			AvgOrderValue:   decimal.RequireFromString("841.67"),
			UniqueCustomers: 2,
		},
		SkippedRecords: 1,
		Monthly: []domain.MonthlyTrend{
			{Month: "2023-01", Revenue: decimal.RequireFromString("1000.00"), OrderCount: 1},
			{Month: "2023-02", Revenue: decimal.RequireFromString("1525.00"), OrderCount: 2, Growth: &growth},
		},
	}
}

func TestSnapshotStore_InsertAndGetByRunID(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotStore(conn)
	ctx := context.Background()

	snap := makeSnapshot("run-001", time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.Insert(ctx, snap))

	got, err := store.GetByRunID(ctx, "run-001")
	require.NoError(t, err)

	assert.Equal(t, snap.RunID, got.RunID)
	assert.Equal(t, snap.Metrics.TotalOrders, got.Metrics.TotalOrders)
	assert.Equal(t, snap.Metrics.UniqueCustomers, got.Metrics.UniqueCustomers)
	assert.Equal(t, snap.SkippedRecords, got.SkippedRecords)
	assert.True(t, got.Metrics.TotalRevenue.Equal(snap.Metrics.TotalRevenue), "TotalRevenue = %s", got.Metrics.TotalRevenue)
	assert.True(t, got.Metrics.AvgOrderValue.Equal(snap.Metrics.AvgOrderValue), "AvgOrderValue = %s", got.Metrics.AvgOrderValue)

	require.Len(t, got.Monthly, 2)
	assert.Equal(t, "2023-01", got.Monthly[0].Month)
	assert.Nil(t, got.Monthly[0].Growth)
	require.NotNil(t, got.Monthly[1].Growth)
	assert.InDelta(t, 52.5, *got.Monthly[1].Growth, 1e-9)
	assert.True(t, got.Monthly[1].Revenue.Equal(snap.Monthly[1].Revenue), "Revenue = %s", got.Monthly[1].Revenue)
}

func TestSnapshotStore_InsertDuplicate(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotStore(conn)
	ctx := context.Background()

	snap := makeSnapshot("run-dup", time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.Insert(ctx, snap))

	err := store.Insert(ctx, snap)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestSnapshotStore_GetByRunIDNotFound(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotStore(conn)

	_, err := store.GetByRunID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSnapshotStore_GetLatest(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotStore(conn)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, makeSnapshot("run-a", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, store.Insert(ctx, makeSnapshot("run-c", time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, store.Insert(ctx, makeSnapshot("run-b", time.Date(2023, 12, 10, 0, 0, 0, 0, time.UTC))))

	got, err := store.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-c", got.RunID)
}

func TestSnapshotStore_GetLatestEmpty(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotStore(conn)

	_, err := store.GetLatest(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSnapshotStore_InsertInvalid(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSnapshotStore(conn)
	ctx := context.Background()

	assert.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Insert(ctx, &domain.AnalysisSnapshot{}), storage.ErrInvalidInput)
}
