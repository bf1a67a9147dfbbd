package driving

import (
	"context"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// ProfileService moves engine state to and from persistent storage.
type ProfileService interface {
	// Persist writes every shopper profile and the query log to storage.
	Persist(ctx context.Context) error

	// Restore loads profiles and the query log from storage into the engines.
	Restore(ctx context.Context) error

	// Export returns the current profile of one shopper.
	Export(ctx context.Context, userID string) (*domain.ProfileSnapshot, error)

	// Forget removes a shopper from the engines and from storage.
	Forget(ctx context.Context, userID string) error
}
