package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ecommerce-analytics/internal/domain"
	"ecommerce-analytics/internal/storage"
)

// OrderStore is an in-memory implementation of storage.OrderStore.
type OrderStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.Order
}

// NewOrderStore creates a new in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		data: make(map[int64]*domain.Order),
	}
}

var _ storage.OrderStore = (*OrderStore)(nil)

// Insert adds a new order. Returns ErrDuplicateKey if order_id exists.
func (s *OrderStore) Insert(_ context.Context, o *domain.Order) error {
	if o == nil || o.OrderID <= 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[o.OrderID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *o
	if copy.CreatedAt.IsZero() {
		copy.CreatedAt = time.Now().UTC()
	}
	s.data[o.OrderID] = &copy
	return nil
}

// InsertBulk adds multiple orders atomically. Fails entire batch on any duplicate.
func (s *OrderStore) InsertBulk(_ context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// First pass: check for duplicates (existing + intra-batch)
	batchKeys := make(map[int64]struct{}, len(orders))
	for _, o := range orders {
		if o == nil || o.OrderID <= 0 {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[o.OrderID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[o.OrderID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[o.OrderID] = struct{}{}
	}

	// Second pass: insert all
	now := time.Now().UTC()
	for _, o := range orders {
		copy := *o
		if copy.CreatedAt.IsZero() {
			copy.CreatedAt = now
		}
		s.data[o.OrderID] = &copy
	}

	return nil
}

// GetAll retrieves every order, ordered by order_date ASC, order_id ASC.
func (s *OrderStore) GetAll(_ context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Order, 0, len(s.data))
	for _, o := range s.data {
		copy := *o
		result = append(result, &copy)
	}

	sortAscending(result)
	return result, nil
}

// GetRecent retrieves the most recent orders, ordered by order_date DESC,
// order_id DESC.
func (s *OrderStore) GetRecent(_ context.Context, limit int) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Order, 0, len(s.data))
	for _, o := range s.data {
		copy := *o
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].OrderDate.Equal(result[j].OrderDate) {
			return result[i].OrderDate.After(result[j].OrderDate)
		}
		return result[i].OrderID > result[j].OrderID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetByDateRange retrieves orders with order_date within [start, end] (inclusive).
func (s *OrderStore) GetByDateRange(_ context.Context, start, end time.Time) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Order
	for _, o := range s.data {
		if o.OrderDate.Before(start) || o.OrderDate.After(end) {
			continue
		}
		copy := *o
		result = append(result, &copy)
	}

	sortAscending(result)
	return result, nil
}

// Count returns the total number of stored orders.
func (s *OrderStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

func sortAscending(orders []*domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.Before(orders[j].OrderDate)
		}
		return orders[i].OrderID < orders[j].OrderID
	})
}
