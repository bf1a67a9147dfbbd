package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
	"github.com/custodia-labs/shopsearch/internal/logger"
)

// Ensure SearchEngine implements the interface.
var _ driving.SearchService = (*SearchEngine)(nil)

// Default limits for list operations.
const (
	DefaultAutocompleteLimit = 8
	DefaultTrendingLimit     = 10
	DefaultHistoryLimit      = 10
)

// DefaultPopularQueries returns the storefront's launch-time popular queries.
func DefaultPopularQueries() []domain.PopularQuery {
	return []domain.PopularQuery{
		{Query: "silk dress", Count: 150},
		{Query: "cashmere sweater", Count: 120},
		{Query: "leather bag", Count: 100},
		{Query: "denim jacket", Count: 90},
		{Query: "black dress", Count: 85},
		{Query: "white shirt", Count: 80},
	}
}

// scoredProduct holds a product and its relevance before ordering.
type scoredProduct struct {
	product domain.Product
	score   float64
}

// SearchEngine ranks, filters and facets products and serves autocomplete.
// Its only state is the query popularity log.
type SearchEngine struct {
	mu                sync.Mutex
	log               *QueryLog
	scorer            *RelevanceScorer
	vocabulary        Vocabulary
	autocompleteLimit int
}

// SearchOption configures a SearchEngine.
type SearchOption func(*SearchEngine)

// WithSeedQueries pre-populates the popularity counters.
func WithSeedQueries(queries []domain.PopularQuery) SearchOption {
	return func(e *SearchEngine) {
		e.log.Seed(queries)
	}
}

// WithVocabulary replaces the autocomplete vocabulary.
func WithVocabulary(v Vocabulary) SearchOption {
	return func(e *SearchEngine) {
		e.vocabulary = v
	}
}

// WithSynonyms replaces the synonym table used for relevance.
func WithSynonyms(synonyms map[string][]string) SearchOption {
	return func(e *SearchEngine) {
		e.scorer = NewRelevanceScorer(synonyms)
	}
}

// WithAutocompleteLimit sets how many suggestions SearchProducts attaches.
func WithAutocompleteLimit(limit int) SearchOption {
	return func(e *SearchEngine) {
		if limit > 0 {
			e.autocompleteLimit = limit
		}
	}
}

// NewSearchEngine creates a search engine with an empty popularity log.
func NewSearchEngine(opts ...SearchOption) *SearchEngine {
	e := &SearchEngine{
		log:               NewQueryLog(),
		scorer:            NewRelevanceScorer(nil),
		vocabulary:        DefaultVocabulary(),
		autocompleteLimit: DefaultAutocompleteLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SearchProducts logs the query, ranks the catalog by relevance, applies
// filters, re-sorts when sortBy asks for it and facets the final list.
// The catalog slice is never modified.
func (e *SearchEngine) SearchProducts(
	query string, catalog []domain.Product, filters domain.SearchFilters, sortBy domain.SortOption,
) domain.SearchResult {
	logger.Section("Product Search")
	start := time.Now()

	normalized := strings.ToLower(strings.TrimSpace(query))
	logger.Debug("Query: %q (normalized %q), catalog size: %d", query, normalized, len(catalog))

	e.mu.Lock()
	if e.log.Record(query) {
		logger.Debug("Query logged, count now %d", e.log.Count(query))
	}
	e.mu.Unlock()

	products := e.textSearch(normalized, catalog)
	logger.Debug("Text matches: %d", len(products))

	if !filters.IsEmpty() {
		products = applyFilters(products, filters)
		logger.Debug("After filters: %d", len(products))
	}

	products = sortResults(products, sortBy)

	result := domain.SearchResult{
		Products:    products,
		Suggestions: e.AutocompleteSuggestions(query, e.autocompleteLimit),
		TotalCount:  len(products),
		Facets:      BuildFacets(products),
	}

	logger.Info("Search %q: %d results in %s", normalized, result.TotalCount, time.Since(start))
	return result
}

// textSearch keeps products scoring above zero, best first. Ties keep
// catalog order. An empty query matches the whole catalog unranked.
func (e *SearchEngine) textSearch(normalized string, catalog []domain.Product) []domain.Product {
	if normalized == "" {
		return append(make([]domain.Product, 0, len(catalog)), catalog...)
	}

	tokens := Tokenize(normalized)
	logger.Debug("Tokens: %v", tokens)

	scored := make([]scoredProduct, 0, len(catalog))
	for i := range catalog {
		score := e.scorer.Score(&catalog[i], tokens)
		if score > 0 {
			scored = append(scored, scoredProduct{product: catalog[i], score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	products := make([]domain.Product, len(scored))
	for i, sp := range scored {
		logger.Debug("  %s %q score=%.2f", sp.product.ID, sp.product.Name, sp.score)
		products[i] = sp.product
	}
	return products
}

// applyFilters keeps products passing every set filter, preserving order.
// An inverted price range (min > max) matches nothing.
func applyFilters(products []domain.Product, f domain.SearchFilters) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if matchesFilters(&products[i], f) {
			out = append(out, products[i])
		}
	}
	return out
}

func matchesFilters(p *domain.Product, f domain.SearchFilters) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if f.PriceRange != nil && !f.PriceRange.Contains(p.Price) {
		return false
	}
	// Unrated products are not penalised by a rating threshold.
	if f.MinRating != nil && *f.MinRating > 0 && p.Rating != nil && *p.Rating < *f.MinRating {
		return false
	}
	if len(f.Colors) > 0 && !offersAny(f.Colors, p.HasColor) {
		return false
	}
	if len(f.Sizes) > 0 && !offersAny(f.Sizes, p.HasSize) {
		return false
	}
	return true
}

func offersAny(names []string, has func(string) bool) bool {
	for _, name := range names {
		if has(name) {
			return true
		}
	}
	return false
}

// sortResults reorders in place for explicit sorts. Relevance, the empty
// option and unknown options leave the relevance order untouched.
func sortResults(products []domain.Product, sortBy domain.SortOption) []domain.Product {
	var less func(a, b *domain.Product) bool

	switch sortBy {
	case domain.SortPriceLowHigh:
		less = func(a, b *domain.Product) bool { return a.Price < b.Price }
	case domain.SortPriceHighLow:
		less = func(a, b *domain.Product) bool { return a.Price > b.Price }
	case domain.SortRating:
		less = func(a, b *domain.Product) bool { return a.RatingValue() > b.RatingValue() }
	case domain.SortNewest:
		less = func(a, b *domain.Product) bool { return a.IsNew && !b.IsNew }
	case domain.SortNameAZ:
		less = func(a, b *domain.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case domain.SortNameZA:
		less = func(a, b *domain.Product) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	case "", domain.SortRelevance:
		return products
	default:
		logger.Warn("Unknown sort %q, keeping relevance order", sortBy)
		return products
	}

	logger.Debug("Sorting by %s", sortBy)
	sort.SliceStable(products, func(i, j int) bool {
		return less(&products[i], &products[j])
	})
	return products
}

// AutocompleteSuggestions merges product, category, brand and popular-query
// matches, each pool capped first, then ranks them by popularity.
// Queries shorter than two characters after trimming get no suggestions.
func (e *SearchEngine) AutocompleteSuggestions(query string, limit int) []domain.SearchSuggestion {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(normalized)) < MinAutocompleteLength {
		return []domain.SearchSuggestion{}
	}
	if limit <= 0 {
		limit = DefaultAutocompleteLimit
	}

	e.mu.Lock()
	vocab := e.vocabulary
	matches := e.log.Matching(normalized)
	e.mu.Unlock()

	suggestions := make([]domain.SearchSuggestion, 0, 10)
	suggestions = append(suggestions,
		matchPool(vocab.ProductNames, normalized, domain.SuggestionProduct, 100, 10, maxProductSuggestions)...)
	suggestions = append(suggestions,
		matchPool(vocab.Categories, normalized, domain.SuggestionCategory, 80, 5, maxCategorySuggestions)...)
	suggestions = append(suggestions,
		matchPool(vocab.Brands, normalized, domain.SuggestionBrand, 70, 5, maxBrandSuggestions)...)

	for i, pq := range matches {
		if i == maxQuerySuggestions {
			break
		}
		suggestions = append(suggestions, domain.SearchSuggestion{
			ID:         "query-" + pq.Query,
			Text:       pq.Query,
			Type:       domain.SuggestionQuery,
			Popularity: pq.Count,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Popularity > suggestions[j].Popularity
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	logger.Debug("Autocomplete %q: %d suggestions", normalized, len(suggestions))
	return suggestions
}

// TrendingQueries returns up to limit logged queries by descending count.
func (e *SearchEngine) TrendingQueries(limit int) []string {
	popular := e.PopularQueries(limit)
	out := make([]string, len(popular))
	for i, pq := range popular {
		out[i] = pq.Query
	}
	return out
}

// PopularQueries returns up to limit logged queries with their counts.
func (e *SearchEngine) PopularQueries(limit int) []domain.PopularQuery {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.Popular(limit)
}

// SearchHistory returns up to limit raw queries, newest first.
func (e *SearchEngine) SearchHistory(limit int) []string {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.History(limit)
}

// SetVocabulary swaps the autocomplete vocabulary, e.g. after a catalog reload.
func (e *SearchEngine) SetVocabulary(v Vocabulary) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vocabulary = v
}

// QueryLogSnapshot returns a copy of the popularity log.
func (e *SearchEngine) QueryLogSnapshot() domain.QueryLogSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.Snapshot()
}

// RestoreQueryLog replaces the popularity log.
func (e *SearchEngine) RestoreQueryLog(snapshot domain.QueryLogSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log.Restore(snapshot)
}
