package services

import "github.com/custodia-labs/shopsearch/internal/core/domain"

// facetCounter counts names, remembering first-seen order.
type facetCounter struct {
	order  []string
	counts map[string]int
}

func newFacetCounter() *facetCounter {
	return &facetCounter{counts: make(map[string]int)}
}

func (c *facetCounter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *facetCounter) result() []domain.FacetCount {
	out := make([]domain.FacetCount, len(c.order))
	for i, name := range c.order {
		out[i] = domain.FacetCount{Name: name, Count: c.counts[name]}
	}
	return out
}

// BuildFacets aggregates exactly the given products. A product counts once
// per distinct colour and size variant it offers, and falls into exactly
// one of the four price buckets.
func BuildFacets(products []domain.Product) domain.Facets {
	categories := newFacetCounter()
	brands := newFacetCounter()
	colors := newFacetCounter()
	sizes := newFacetCounter()
	var under50, to100, to200, over200 int

	for i := range products {
		p := &products[i]
		categories.add(p.Category)
		brands.add(p.Brand)

		seen := make(map[string]bool, len(p.Colors))
		for _, c := range p.Colors {
			if !seen[c.Name] {
				seen[c.Name] = true
				colors.add(c.Name)
			}
		}
		clear(seen)
		for _, s := range p.Sizes {
			if !seen[s.Name] {
				seen[s.Name] = true
				sizes.add(s.Name)
			}
		}

		switch {
		case p.Price <= 50:
			under50++
		case p.Price <= 100:
			to100++
		case p.Price <= 200:
			to200++
		default:
			over200++
		}
	}

	return domain.Facets{
		Categories: categories.result(),
		Brands:     brands.result(),
		PriceRanges: []domain.FacetCount{
			{Name: domain.PriceBucketUnder50, Count: under50},
			{Name: domain.PriceBucket51To100, Count: to100},
			{Name: domain.PriceBucket101To200, Count: to200},
			{Name: domain.PriceBucketOver200, Count: over200},
		},
		Colors: colors.result(),
		Sizes:  sizes.result(),
	}
}
