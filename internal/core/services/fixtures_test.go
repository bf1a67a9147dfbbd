package services

import (
	"time"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// testCatalog mirrors the storefront's six mock products.
func testCatalog() []domain.Product {
	sizes := func(names ...string) []domain.Size {
		out := make([]domain.Size, len(names))
		for i, n := range names {
			out[i] = domain.Size{ID: n, Name: n, Value: n, InStock: true}
		}
		return out
	}
	colors := func(names ...string) []domain.Color {
		out := make([]domain.Color, len(names))
		for i, n := range names {
			out[i] = domain.Color{ID: n, Name: n, InStock: true}
		}
		return out
	}

	return []domain.Product{
		{
			ID: "1", Name: "Silk Midi Dress", Description: "Flowing silk dress with a midi hem",
			Brand: "Fashion Studio", Category: "women", Price: 299, OriginalPrice: domain.Float(399),
			Tags: []string{"silk", "midi", "elegant"}, Rating: domain.Float(4.8),
			Sizes: sizes("S", "M", "L"), Colors: colors("black", "navy"), InStock: true,
		},
		{
			ID: "2", Name: "Cashmere Sweater", Description: "Soft cashmere knit",
			Brand: "Fashion Studio", Category: "women", Price: 189,
			Tags: []string{"cashmere", "warm", "knit"}, Rating: domain.Float(4.6),
			Sizes: sizes("S", "M"), Colors: colors("white", "black"), InStock: true, IsNew: true,
		},
		{
			ID: "3", Name: "Leather Handbag", Description: "Structured leather bag",
			Brand: "Fashion Studio", Category: "accessories", Price: 459,
			Tags: []string{"leather", "elegant"}, Rating: domain.Float(4.9),
			Colors: colors("black"), InStock: true,
		},
		{
			ID: "4", Name: "Wool Coat", Description: "Double-breasted wool coat",
			Brand: "Fashion Studio", Category: "women", Price: 599, OriginalPrice: domain.Float(799),
			Tags: []string{"wool", "warm", "elegant"}, Rating: domain.Float(4.7),
			Sizes: sizes("M", "L"), Colors: colors("navy"), InStock: false,
		},
		{
			ID: "5", Name: "Cotton T-Shirt", Description: "Everyday cotton tee",
			Brand: "Fashion Studio", Category: "men", Price: 49,
			Tags: []string{"cotton", "casual"},
			Sizes: sizes("M", "L", "XL"), Colors: colors("white"), InStock: true,
		},
		{
			ID: "6", Name: "Denim Jacket", Description: "Classic denim jacket",
			Brand: "Fashion Studio", Category: "men", Price: 129,
			Tags: []string{"denim", "casual"}, Rating: domain.Float(4.4),
			Sizes: sizes("M", "L"), Colors: colors("blue"), InStock: true,
		},
	}
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

// fixedClock returns a clock stuck at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
