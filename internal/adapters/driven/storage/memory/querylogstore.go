package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
)

// Ensure QueryLogStore implements the interface.
var _ driven.QueryLogStore = (*QueryLogStore)(nil)

// QueryLogStore is an in-memory implementation of driven.QueryLogStore.
type QueryLogStore struct {
	mu       sync.RWMutex
	snapshot domain.QueryLogSnapshot
}

// NewQueryLogStore creates an empty in-memory query log store.
func NewQueryLogStore() *QueryLogStore {
	return &QueryLogStore{}
}

// SaveQueryLog replaces the stored log.
func (s *QueryLogStore) SaveQueryLog(_ context.Context, snapshot domain.QueryLogSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = domain.QueryLogSnapshot{
		History: slices.Clone(snapshot.History),
		Popular: slices.Clone(snapshot.Popular),
	}
	return nil
}

// LoadQueryLog returns a copy of the stored log.
func (s *QueryLogStore) LoadQueryLog(_ context.Context) (domain.QueryLogSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.QueryLogSnapshot{
		History: slices.Clone(s.snapshot.History),
		Popular: slices.Clone(s.snapshot.Popular),
	}, nil
}
