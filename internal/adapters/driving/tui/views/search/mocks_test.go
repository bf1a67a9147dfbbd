package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

type mockSearchService struct {
	calls       int
	lastQuery   string
	lastFilters domain.SearchFilters
	lastSort    domain.SortOption
	suggestions []domain.SearchSuggestion
}

func (m *mockSearchService) SearchProducts(
	query string, catalog []domain.Product, filters domain.SearchFilters, sortBy domain.SortOption,
) domain.SearchResult {
	m.calls++
	m.lastQuery = query
	m.lastFilters = filters
	m.lastSort = sortBy

	var out []domain.Product
	for _, p := range catalog {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			continue
		}
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		out = append(out, p)
	}

	categories := map[string]int{}
	var order []string
	for _, p := range out {
		if categories[p.Category] == 0 {
			order = append(order, p.Category)
		}
		categories[p.Category]++
	}
	var facets domain.Facets
	for _, c := range order {
		facets.Categories = append(facets.Categories, domain.FacetCount{Name: c, Count: categories[c]})
	}
	return domain.SearchResult{Products: out, TotalCount: len(out), Facets: facets}
}

func (m *mockSearchService) AutocompleteSuggestions(query string, limit int) []domain.SearchSuggestion {
	if len(m.suggestions) > limit {
		return m.suggestions[:limit]
	}
	return m.suggestions
}

func (m *mockSearchService) TrendingQueries(int) []string { return nil }
func (m *mockSearchService) PopularQueries(int) []domain.PopularQuery { return nil }
func (m *mockSearchService) SearchHistory(int) []string { return nil }

type mockCatalog struct {
	products []domain.Product
	err      error
}

func (m *mockCatalog) Products(context.Context) ([]domain.Product, error) {
	return m.products, m.err
}

type mockPersonalization struct {
	tracked   []domain.Interaction
	sortCalls int
	reverse   bool
}

func (m *mockPersonalization) Preferences(userID string) domain.UserPreferences {
	return domain.DefaultUserPreferences(userID)
}
func (m *mockPersonalization) UpdatePreferences(domain.UserPreferences) {}
func (m *mockPersonalization) SetEnabled(string, bool) {}
func (m *mockPersonalization) TrackInteraction(_ string, i domain.Interaction) error {
	m.tracked = append(m.tracked, i)
	return nil
}
func (m *mockPersonalization) Recommendations(
	string, []domain.Product, domain.RecommendationContext, int,
) []domain.Product {
	return nil
}
func (m *mockPersonalization) SimilarProducts(string, string, []domain.Product, int) []domain.Product {
	return nil
}
func (m *mockPersonalization) SortOrder(_ string, products []domain.Product) []domain.Product {
	m.sortCalls++
	if !m.reverse {
		return products
	}
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[len(products)-1-i] = p
	}
	return out
}
func (m *mockPersonalization) Reset(string) {}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Silk Evening Dress", Brand: "Luxury Brand", Category: "women", Price: 299.99, InStock: true},
		{ID: "2", Name: "Cotton Tee", Brand: "Basics", Category: "men", Price: 19.5, InStock: true},
		{ID: "3", Name: "Silk Scarf", Brand: "Luxury Brand", Category: "accessories", Price: 89, InStock: true},
	}
}

// collect runs cmd and any batched commands and returns their messages.
// It must not be used on commands that include ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
