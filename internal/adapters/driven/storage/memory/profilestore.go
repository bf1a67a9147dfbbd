package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is an in-memory implementation of driven.ProfileStore.
// Snapshots are deep-copied on the way in and out.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.ProfileSnapshot
}

// NewProfileStore creates a new in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.ProfileSnapshot),
	}
}

// Save stores or replaces a profile.
func (s *ProfileStore) Save(_ context.Context, snapshot domain.ProfileSnapshot) error {
	if snapshot.UserID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[snapshot.UserID] = cloneSnapshot(snapshot)
	return nil
}

// Get retrieves a profile by user ID.
func (s *ProfileStore) Get(_ context.Context, userID string) (*domain.ProfileSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := cloneSnapshot(snapshot)
	return &c, nil
}

// List returns every profile, ordered by user ID.
func (s *ProfileStore) List(_ context.Context) ([]domain.ProfileSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := slices.Sorted(maps.Keys(s.profiles))
	result := make([]domain.ProfileSnapshot, 0, len(ids))
	for _, id := range ids {
		result = append(result, cloneSnapshot(s.profiles[id]))
	}
	return result, nil
}

// Delete removes a profile.
func (s *ProfileStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}

func cloneSnapshot(snapshot domain.ProfileSnapshot) domain.ProfileSnapshot {
	snapshot.Behavior = snapshot.Behavior.Clone()
	p := &snapshot.Preferences
	p.FavoriteCategories = slices.Clone(p.FavoriteCategories)
	p.FavoriteBrands = slices.Clone(p.FavoriteBrands)
	p.PreferredSizes = slices.Clone(p.PreferredSizes)
	p.PreferredColors = slices.Clone(p.PreferredColors)
	return snapshot
}
