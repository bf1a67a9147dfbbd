package mcp

import (
	"context"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result      domain.SearchResult
	suggestions []domain.SearchSuggestion
	trending    []string
	history     []string

	lastQuery   string
	lastFilters domain.SearchFilters
	lastSort    domain.SortOption
	lastLimit   int
}

func (m *mockSearchService) SearchProducts(
	query string, _ []domain.Product, filters domain.SearchFilters, sortBy domain.SortOption,
) domain.SearchResult {
	m.lastQuery = query
	m.lastFilters = filters
	m.lastSort = sortBy
	return m.result
}

func (m *mockSearchService) AutocompleteSuggestions(_ string, limit int) []domain.SearchSuggestion {
	m.lastLimit = limit
	return m.suggestions
}

func (m *mockSearchService) TrendingQueries(limit int) []string {
	m.lastLimit = limit
	return m.trending
}

func (m *mockSearchService) PopularQueries(_ int) []domain.PopularQuery {
	return nil
}

func (m *mockSearchService) SearchHistory(limit int) []string {
	m.lastLimit = limit
	return m.history
}

// mockCatalog is a mock implementation of driven.Catalog.
type mockCatalog struct {
	products []domain.Product
	err      error
}

func (m *mockCatalog) Products(_ context.Context) ([]domain.Product, error) {
	return m.products, m.err
}

// mockPersonalizationService is a mock implementation of driving.PersonalizationService.
type mockPersonalizationService struct {
	recommended []domain.Product
	similar     []domain.Product
	trackErr    error

	lastUserID      string
	lastProductID   string
	lastLimit       int
	lastContext     domain.RecommendationContext
	lastInteraction domain.Interaction
}

func (m *mockPersonalizationService) Preferences(userID string) domain.UserPreferences {
	return domain.DefaultUserPreferences(userID)
}

func (m *mockPersonalizationService) UpdatePreferences(_ domain.UserPreferences) {}

func (m *mockPersonalizationService) SetEnabled(_ string, _ bool) {}

func (m *mockPersonalizationService) TrackInteraction(userID string, interaction domain.Interaction) error {
	m.lastUserID = userID
	m.lastInteraction = interaction
	return m.trackErr
}

func (m *mockPersonalizationService) Recommendations(
	userID string, _ []domain.Product, rctx domain.RecommendationContext, limit int,
) []domain.Product {
	m.lastUserID = userID
	m.lastContext = rctx
	m.lastLimit = limit
	return m.recommended
}

func (m *mockPersonalizationService) SimilarProducts(
	userID, productID string, _ []domain.Product, limit int,
) []domain.Product {
	m.lastUserID = userID
	m.lastProductID = productID
	m.lastLimit = limit
	return m.similar
}

func (m *mockPersonalizationService) SortOrder(_ string, catalog []domain.Product) []domain.Product {
	return catalog
}

func (m *mockPersonalizationService) Reset(_ string) {}

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	snapshot *domain.ProfileSnapshot
	err      error
}

func (m *mockProfileService) Persist(_ context.Context) error { return m.err }

func (m *mockProfileService) Restore(_ context.Context) error { return m.err }

func (m *mockProfileService) Export(_ context.Context, _ string) (*domain.ProfileSnapshot, error) {
	return m.snapshot, m.err
}

func (m *mockProfileService) Forget(_ context.Context, _ string) error { return m.err }

func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Name: "Silk Midi Dress", Brand: "Fashion Studio", Category: "women", Price: 299,
			Rating: domain.Float(4.8), InStock: true,
			Colors: []domain.Color{{ID: "black", Name: "Black", Hex: "#000000", InStock: true}},
			Sizes:  []domain.Size{{ID: "s", Name: "S", Value: "S", InStock: true}},
		},
		{ID: "2", Name: "Cashmere Sweater", Brand: "Fashion Studio", Category: "women", Price: 189, InStock: true, IsNew: true},
		{ID: "3", Name: "Leather Handbag", Brand: "Luxury Brand", Category: "accessories", Price: 459, InStock: true},
	}
}

func newTestServer(ports *Ports) (*Server, error) {
	if ports.Catalog == nil {
		ports.Catalog = &mockCatalog{products: testProducts()}
	}
	return NewServer(ports)
}
