package postgres

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

func makeTestOrder(id int64, customerID string, orderDate time.Time, total string) *domain.Order {
	return &domain.Order{
		OrderID:     id,
		CustomerID:  customerID,
		ProductName: "Coffee Maker",
		Category:    "Home & Kitchen",
		OrderDate:   orderDate,
		UnitPrice:   decimal.RequireFromString(total),
		Quantity:    1,
		TotalAmount: decimal.RequireFromString(total),
	}
}

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOrderStore_InsertAndGetAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	order := makeTestOrder(1, "CUST_001", testDate(2023, 6, 15), "89.99")
	require.NoError(t, store.Insert(ctx, order))

	got, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, order.OrderID, got[0].OrderID)
	assert.Equal(t, order.CustomerID, got[0].CustomerID)
	assert.Equal(t, order.ProductName, got[0].ProductName)
	assert.Equal(t, order.Category, got[0].Category)
	assert.True(t, got[0].OrderDate.Equal(order.OrderDate), "OrderDate = %s, want %s", got[0].OrderDate, order.OrderDate)
	assert.True(t, got[0].UnitPrice.Equal(order.UnitPrice), "UnitPrice = %s", got[0].UnitPrice)
	assert.True(t, got[0].TotalAmount.Equal(order.TotalAmount), "TotalAmount = %s", got[0].TotalAmount)
	assert.Equal(t, order.Quantity, got[0].Quantity)
	assert.NotZero(t, got[0].CreatedAt)
}

func TestOrderStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	order := makeTestOrder(1, "CUST_001", testDate(2023, 6, 15), "89.99")
	require.NoError(t, store.Insert(ctx, order))

	err := store.Insert(ctx, order)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestOrderStore_InsertBulkAtomic(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, makeTestOrder(2, "CUST_001", testDate(2023, 6, 1), "10.00")))

	// Batch hits the existing key; the transaction must roll back whole.
	batch := []*domain.Order{
		makeTestOrder(1, "CUST_002", testDate(2023, 6, 2), "20.00"),
		makeTestOrder(2, "CUST_003", testDate(2023, 6, 3), "30.00"),
	}
	err := store.InsertBulk(ctx, batch)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOrderStore_GetAllOrdering(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	batch := []*domain.Order{
		makeTestOrder(3, "CUST_001", testDate(2023, 3, 1), "10.00"),
		makeTestOrder(1, "CUST_002", testDate(2023, 1, 1), "10.00"),
		makeTestOrder(2, "CUST_003", testDate(2023, 1, 1), "10.00"),
	}
	require.NoError(t, store.InsertBulk(ctx, batch))

	got, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// order_date ASC, order_id ASC
	assert.Equal(t, int64(1), got[0].OrderID)
	assert.Equal(t, int64(2), got[1].OrderID)
	assert.Equal(t, int64(3), got[2].OrderID)
}

func TestOrderStore_GetRecent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	batch := []*domain.Order{
		makeTestOrder(1, "CUST_001", testDate(2023, 1, 1), "10.00"),
		makeTestOrder(2, "CUST_002", testDate(2023, 3, 1), "10.00"),
		makeTestOrder(3, "CUST_003", testDate(2023, 2, 1), "10.00"),
		makeTestOrder(4, "CUST_004", testDate(2023, 3, 1), "10.00"),
	}
	require.NoError(t, store.InsertBulk(ctx, batch))

	got, err := store.GetRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// order_date DESC, order_id DESC
	assert.Equal(t, int64(4), got[0].OrderID)
	assert.Equal(t, int64(2), got[1].OrderID)
	assert.Equal(t, int64(3), got[2].OrderID)
}

func TestOrderStore_GetByDateRange(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)
	ctx := context.Background()

	batch := []*domain.Order{
		makeTestOrder(1, "CUST_001", testDate(2023, 1, 15), "10.00"),
		makeTestOrder(2, "CUST_002", testDate(2023, 2, 15), "10.00"),
		makeTestOrder(3, "CUST_003", testDate(2023, 3, 15), "10.00"),
	}
	require.NoError(t, store.InsertBulk(ctx, batch))

	got, err := store.GetByDateRange(ctx, testDate(2023, 2, 15), testDate(2023, 3, 15))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].OrderID)
	assert.Equal(t, int64(3), got[1].OrderID)
}

func TestOrderStore_CountEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewOrderStore(pool)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
