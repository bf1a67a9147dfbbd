package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoCatalog indicates that no catalog was provided.
	ErrNoCatalog = errors.New("catalog is required")
)
