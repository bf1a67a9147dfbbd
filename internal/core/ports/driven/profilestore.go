package driven

import (
	"context"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// ProfileStore persists shopper profiles (behaviour and preferences).
// Backed by SQLite, Badger or memory.
type ProfileStore interface {
	// Save stores or replaces the profile for snapshot.UserID.
	Save(ctx context.Context, snapshot domain.ProfileSnapshot) error

	// Get retrieves a profile. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, userID string) (*domain.ProfileSnapshot, error)

	// List returns every stored profile.
	List(ctx context.Context) ([]domain.ProfileSnapshot, error)

	// Delete removes a profile. Deleting an absent profile is not an error.
	Delete(ctx context.Context, userID string) error
}

// QueryLogStore persists the search engine's query popularity log.
type QueryLogStore interface {
	// SaveQueryLog replaces the stored log.
	SaveQueryLog(ctx context.Context, snapshot domain.QueryLogSnapshot) error

	// LoadQueryLog returns the stored log, or an empty snapshot if none exists.
	LoadQueryLog(ctx context.Context) (domain.QueryLogSnapshot, error)
}
