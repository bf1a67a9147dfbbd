// Package static provides the built-in storefront catalog used when no
// catalog file is configured.
package static

import (
	"context"
	"slices"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.Catalog = (*Catalog)(nil)

// Catalog serves a fixed product list.
type Catalog struct {
	products []domain.Product
}

// New creates a catalog over the given products. With no products it
// serves the storefront's seeded catalog.
func New(products ...domain.Product) *Catalog {
	if len(products) == 0 {
		products = Seed()
	}
	return &Catalog{products: products}
}

// Products returns a copy of the catalog.
func (c *Catalog) Products(_ context.Context) ([]domain.Product, error) {
	return slices.Clone(c.products), nil
}

// Seed returns the storefront's six products.
func Seed() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Silk Midi Dress",
			Description:   "Flowing silk dress with a midi hem, cut on the bias",
			Brand:         "Fashion Studio",
			Category:      "women",
			Price:         299,
			OriginalPrice: domain.Float(399),
			Tags:          []string{"silk", "midi", "elegant", "dress"},
			Rating:        domain.Float(4.8),
			Sizes:         sizes("XS", "S", "M", "L"),
			Colors:        []domain.Color{color("Black", "#000000"), color("Navy", "#1B2A4A")},
			InStock:       true,
		},
		{
			ID:          "2",
			Name:        "Cashmere Sweater",
			Description: "Soft cashmere crew-neck knit for cold days",
			Brand:       "Fashion Studio",
			Category:    "women",
			Price:       189,
			Tags:        []string{"cashmere", "warm", "knit", "sweater"},
			Rating:      domain.Float(4.6),
			Sizes:       sizes("S", "M", "L"),
			Colors:      []domain.Color{color("Ivory", "#FFFFF0"), color("Black", "#000000")},
			InStock:     true,
			IsNew:       true,
		},
		{
			ID:          "3",
			Name:        "Leather Handbag",
			Description: "Structured leather bag with a detachable strap",
			Brand:       "Luxury Brand",
			Category:    "accessories",
			Price:       459,
			Tags:        []string{"leather", "elegant", "bag"},
			Rating:      domain.Float(4.9),
			Sizes:       sizes("One Size"),
			Colors:      []domain.Color{color("Black", "#000000"), color("Tan", "#D2B48C")},
			InStock:     true,
		},
		{
			ID:            "4",
			Name:          "Wool Coat",
			Description:   "Double-breasted wool coat, fully lined",
			Brand:         "Fashion Studio",
			Category:      "women",
			Price:         599,
			OriginalPrice: domain.Float(799),
			Tags:          []string{"wool", "warm", "elegant", "coat", "winter"},
			Rating:        domain.Float(4.7),
			Sizes:         sizes("S", "M", "L"),
			Colors:        []domain.Color{color("Camel", "#C19A6B"), color("Navy", "#1B2A4A")},
			InStock:       true,
		},
		{
			ID:          "5",
			Name:        "Cotton T-Shirt",
			Description: "Everyday organic cotton tee",
			Brand:       "Designer Label",
			Category:    "men",
			Price:       49,
			Tags:        []string{"cotton", "casual", "basic"},
			Rating:      domain.Float(4.3),
			Sizes:       sizes("S", "M", "L", "XL"),
			Colors:      []domain.Color{color("White", "#FFFFFF"), color("Black", "#000000")},
			InStock:     true,
		},
		{
			ID:          "6",
			Name:        "Denim Jacket",
			Description: "Classic denim jacket with a relaxed fit",
			Brand:       "Designer Label",
			Category:    "men",
			Price:       129,
			Tags:        []string{"denim", "casual", "jacket"},
			Rating:      domain.Float(4.5),
			Sizes:       sizes("M", "L", "XL"),
			Colors:      []domain.Color{color("Blue", "#1560BD")},
			InStock:     true,
		},
	}
}

func sizes(names ...string) []domain.Size {
	out := make([]domain.Size, len(names))
	for i, n := range names {
		out[i] = domain.Size{ID: n, Name: n, Value: n, InStock: true}
	}
	return out
}

func color(name, hex string) domain.Color {
	return domain.Color{ID: hex, Name: name, Hex: hex, InStock: true}
}
