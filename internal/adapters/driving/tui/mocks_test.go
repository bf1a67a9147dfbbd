package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

type stubSearch struct {
	queries []string
}

func (s *stubSearch) SearchProducts(
	query string, catalog []domain.Product, _ domain.SearchFilters, _ domain.SortOption,
) domain.SearchResult {
	s.queries = append(s.queries, query)
	var out []domain.Product
	for _, p := range catalog {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return domain.SearchResult{Products: out, TotalCount: len(out)}
}

func (s *stubSearch) AutocompleteSuggestions(string, int) []domain.SearchSuggestion { return nil }
func (s *stubSearch) TrendingQueries(int) []string { return nil }
func (s *stubSearch) PopularQueries(int) []domain.PopularQuery { return nil }
func (s *stubSearch) SearchHistory(int) []string { return nil }

type stubCatalog struct {
	products []domain.Product
}

func (c *stubCatalog) Products(context.Context) ([]domain.Product, error) {
	return c.products, nil
}

type stubPersonalization struct {
	tracked []domain.Interaction
}

func (p *stubPersonalization) Preferences(userID string) domain.UserPreferences {
	return domain.DefaultUserPreferences(userID)
}
func (p *stubPersonalization) UpdatePreferences(domain.UserPreferences) {}
func (p *stubPersonalization) SetEnabled(string, bool)                  {}
func (p *stubPersonalization) TrackInteraction(_ string, i domain.Interaction) error {
	p.tracked = append(p.tracked, i)
	return nil
}
func (p *stubPersonalization) Recommendations(
	_ string, catalog []domain.Product, _ domain.RecommendationContext, limit int,
) []domain.Product {
	if len(catalog) > limit {
		return catalog[:limit]
	}
	return catalog
}
func (p *stubPersonalization) SimilarProducts(_, productID string, catalog []domain.Product, _ int) []domain.Product {
	var out []domain.Product
	for _, c := range catalog {
		if c.ID != productID {
			out = append(out, c)
		}
	}
	return out
}
func (p *stubPersonalization) SortOrder(_ string, catalog []domain.Product) []domain.Product {
	return catalog
}
func (p *stubPersonalization) Reset(string) {}

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Silk Evening Dress", Brand: "Luxury Brand", Category: "women", Price: 299, InStock: true},
		{ID: "2", Name: "Cotton Tee", Brand: "Basics", Category: "men", Price: 25, InStock: true},
		{ID: "3", Name: "Silk Scarf", Brand: "Luxury Brand", Category: "accessories", Price: 89, InStock: true},
	}
}

// drain runs cmd and returns every message it produces, flattening batches.
// Ticks and the blink loop are skipped.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
