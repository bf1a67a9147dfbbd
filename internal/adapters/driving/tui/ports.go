// Package tui provides an interactive terminal user interface for shopsearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
)

// Ports aggregates the services the TUI drives.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs queries and autocomplete.
	Search driving.SearchService

	// Catalog supplies the products to search and recommend.
	Catalog driven.Catalog

	// Personalization tracks interactions and ranks for the shopper.
	// Optional; without it recommendations and tracking are unavailable.
	Personalization driving.PersonalizationService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// UserID is the shopper the session acts for.
	UserID string
}

// NewPorts creates a Ports aggregate with the required services.
func NewPorts(search driving.SearchService, catalog driven.Catalog, userID string) *Ports {
	return &Ports{
		Search:  search,
		Catalog: catalog,
		UserID:  userID,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Catalog == nil {
		return ErrMissingCatalog
	}
	return nil
}
