package driven

import (
	"context"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// Catalog supplies the product list. The engines never cache it;
// callers fetch a fresh list for every search or recommendation call.
type Catalog interface {
	// Products returns every product, in catalog order.
	Products(ctx context.Context) ([]domain.Product, error)
}

// WatchableCatalog is a Catalog that can report changes to its source.
type WatchableCatalog interface {
	Catalog

	// Watch calls onChange after the underlying source changed and was
	// reloaded. It blocks until ctx is cancelled.
	Watch(ctx context.Context, onChange func()) error
}
