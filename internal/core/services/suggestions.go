package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// Per-pool caps applied before autocomplete pools are merged.
const (
	maxProductSuggestions  = 3
	maxCategorySuggestions = 2
	maxBrandSuggestions    = 2
	maxQuerySuggestions    = 3

	// MinAutocompleteLength is the shortest trimmed query that gets suggestions.
	MinAutocompleteLength = 2
)

// Vocabulary holds the names autocomplete can suggest.
// Earlier entries in each list rank higher.
type Vocabulary struct {
	ProductNames []string
	Categories   []string
	Brands       []string
}

// DefaultVocabulary returns the storefront's featured names.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		ProductNames: []string{
			"Silk Midi Dress",
			"Cashmere Sweater",
			"Leather Handbag",
			"Wool Coat",
			"Cotton T-Shirt",
			"Denim Jacket",
		},
		Categories: []string{"Women", "Men", "Accessories", "Shoes", "Bags"},
		Brands:     []string{"Fashion Studio", "Luxury Brand", "Designer Label"},
	}
}

// VocabularyFromCatalog collects distinct names, categories and brands
// in catalog order.
func VocabularyFromCatalog(catalog []domain.Product) Vocabulary {
	var v Vocabulary
	seenName := map[string]bool{}
	seenCategory := map[string]bool{}
	seenBrand := map[string]bool{}

	for i := range catalog {
		p := &catalog[i]
		if p.Name != "" && !seenName[p.Name] {
			seenName[p.Name] = true
			v.ProductNames = append(v.ProductNames, p.Name)
		}
		if p.Category != "" && !seenCategory[p.Category] {
			seenCategory[p.Category] = true
			v.Categories = append(v.Categories, p.Category)
		}
		if p.Brand != "" && !seenBrand[p.Brand] {
			seenBrand[p.Brand] = true
			v.Brands = append(v.Brands, p.Brand)
		}
	}
	return v
}

// matchPool suggests every name containing query, scoring the i-th match
// base - i*step.
func matchPool(
	names []string, query string, kind domain.SuggestionType, base, step, limit int,
) []domain.SearchSuggestion {
	var out []domain.SearchSuggestion
	for _, name := range names {
		if len(out) == limit {
			break
		}
		if !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		i := len(out)
		out = append(out, domain.SearchSuggestion{
			ID:         fmt.Sprintf("%s-%d", kind, i),
			Text:       name,
			Type:       kind,
			Popularity: base - i*step,
		})
	}
	return out
}
