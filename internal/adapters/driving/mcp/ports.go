package mcp

import (
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
)

// Ports aggregates all ports required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides product search and autocomplete.
	Search driving.SearchService

	// Catalog supplies the product list for every call.
	Catalog driven.Catalog

	// Personalization provides recommendations and interaction tracking.
	Personalization driving.PersonalizationService

	// Profiles exposes shopper profiles as resources.
	Profiles driving.ProfileService

	// DefaultUserID is used when a tool call names no shopper.
	DefaultUserID string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Catalog == nil {
		return ErrMissingCatalog
	}
	// Personalization and Profiles are optional
	return nil
}

func (p *Ports) userID(requested string) string {
	if requested != "" {
		return requested
	}
	return p.DefaultUserID
}
