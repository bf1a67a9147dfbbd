// Package domain defines the core business entities for shopsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Product: A catalog item, owned by the catalog collaborator
//   - SearchFilters, SearchResult, Facets: One search call's inputs and outputs
//   - SearchSuggestion: An autocomplete candidate
//   - UserBehavior: A shopper's interaction history and preference weights
//   - RecommendationContext: Situational hints (time of day, season, occasion)
//   - ProfileSnapshot: The persisted form of a shopper profile
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
