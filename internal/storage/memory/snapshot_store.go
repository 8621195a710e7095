package memory

import (
	"context"
	"sync"

	"ecommerce-analytics/internal/domain"
	"ecommerce-analytics/internal/storage"
)

// SnapshotStore is an in-memory implementation of storage.SnapshotStore.
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[string]*domain.AnalysisSnapshot
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		data: make(map[string]*domain.AnalysisSnapshot),
	}
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// Insert adds a new snapshot. Returns ErrDuplicateKey if run_id exists.
func (s *SnapshotStore) Insert(_ context.Context, snap *domain.AnalysisSnapshot) error {
	if snap == nil || snap.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[snap.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[snap.RunID] = copySnapshot(snap)
	return nil
}

// GetByRunID retrieves a snapshot by run ID.
func (s *SnapshotStore) GetByRunID(_ context.Context, runID string) (*domain.AnalysisSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[runID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copySnapshot(snap), nil
}

// GetLatest retrieves the most recently computed snapshot.
func (s *SnapshotStore) GetLatest(_ context.Context) (*domain.AnalysisSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.AnalysisSnapshot
	for _, snap := range s.data {
		if latest == nil || snap.ComputedAt.After(latest.ComputedAt) ||
			(snap.ComputedAt.Equal(latest.ComputedAt) && snap.RunID > latest.RunID) {
			latest = snap
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	return copySnapshot(latest), nil
}

func copySnapshot(snap *domain.AnalysisSnapshot) *domain.AnalysisSnapshot {
	copy := *snap
	copy.Monthly = make([]domain.MonthlyTrend, len(snap.Monthly))
	for i, m := range snap.Monthly {
		copy.Monthly[i] = m
		if m.Growth != nil {
			g := *m.Growth
			copy.Monthly[i].Growth = &g
		}
	}
	return &copy
}
