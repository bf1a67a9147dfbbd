package cli

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printProducts writes a numbered product listing.
func printProducts(cmd *cobra.Command, products []domain.Product) {
	for i := range products {
		cmd.Printf("  [%d] %s\n", i+1, productLine(&products[i]))
	}
}

// productLine formats one product as "Name (Brand) $price [details]".
func productLine(p *domain.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) $%.2f", p.Name, p.Brand, p.Price)
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		fmt.Fprintf(&b, " was $%.2f", *p.OriginalPrice)
	}
	if p.Rating != nil {
		fmt.Fprintf(&b, "  %.1f/5", *p.Rating)
	}
	var flags []string
	if p.IsNew {
		flags = append(flags, "new")
	}
	if !p.InStock {
		flags = append(flags, "out of stock")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, "  [%s]", strings.Join(flags, ", "))
	}
	fmt.Fprintf(&b, "  id:%s", p.ID)
	return b.String()
}

// printFacets writes the non-empty facet groups of a result set.
func printFacets(cmd *cobra.Command, facets domain.Facets) {
	groups := []struct {
		name   string
		counts []domain.FacetCount
	}{
		{"Categories", facets.Categories},
		{"Brands", facets.Brands},
		{"Price", facets.PriceRanges},
		{"Colors", facets.Colors},
		{"Sizes", facets.Sizes},
	}
	for _, g := range groups {
		if len(g.counts) == 0 {
			continue
		}
		parts := make([]string, len(g.counts))
		for i, c := range g.counts {
			parts[i] = fmt.Sprintf("%s (%d)", c.Name, c.Count)
		}
		cmd.Printf("  %-11s %s\n", g.name+":", strings.Join(parts, ", "))
	}
}
