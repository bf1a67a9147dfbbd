package driving

import "github.com/custodia-labs/shopsearch/internal/core/domain"

// SearchService provides product search and autocomplete to external actors.
// Calls are synchronous and safe to issue on every keystroke.
type SearchService interface {
	// SearchProducts ranks, filters, sorts and facets the catalog for query.
	SearchProducts(
		query string, catalog []domain.Product, filters domain.SearchFilters, sortBy domain.SortOption,
	) domain.SearchResult

	// AutocompleteSuggestions returns up to limit suggestions for a partial query.
	AutocompleteSuggestions(query string, limit int) []domain.SearchSuggestion

	// TrendingQueries returns the most frequent logged queries.
	TrendingQueries(limit int) []string

	// PopularQueries returns the most frequent logged queries with their counts.
	PopularQueries(limit int) []domain.PopularQuery

	// SearchHistory returns the most recent queries, newest first.
	SearchHistory(limit int) []string
}
