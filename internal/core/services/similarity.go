package services

import (
	"math"
	"slices"
	"sort"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// Content similarity weights.
const (
	SameCategoryWeight  = 0.4
	SameBrandWeight     = 0.2
	PriceAffinityWeight = 0.2
	TagOverlapWeight    = 0.2
)

// SimilarityStrategy finds products similar to productID. ok is false when
// the strategy has nothing to say about the product, so callers can fall
// through to another strategy.
type SimilarityStrategy interface {
	Similar(productID string, catalog []domain.Product, limit int) (products []domain.Product, ok bool)
}

// TableSimilarity answers from a precomputed neighbour table.
type TableSimilarity struct {
	table map[string][]domain.SimilarProduct
}

// NewTableSimilarity indexes entries by product ID. Later entries for the
// same product replace earlier ones.
func NewTableSimilarity(entries []domain.ProductSimilarity) *TableSimilarity {
	t := &TableSimilarity{table: make(map[string][]domain.SimilarProduct, len(entries))}
	for _, e := range entries {
		t.table[e.ProductID] = slices.Clone(e.SimilarProducts)
	}
	return t
}

// Similar returns the highest-scoring neighbours in score order. Neighbours
// missing from the catalog are skipped.
func (t *TableSimilarity) Similar(productID string, catalog []domain.Product, limit int) ([]domain.Product, bool) {
	neighbours, ok := t.table[productID]
	if !ok {
		return nil, false
	}

	ranked := slices.Clone(neighbours)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	out := make([]domain.Product, 0, max(min(limit, len(ranked)), 0))
	for _, n := range ranked {
		if len(out) == limit {
			break
		}
		if p, found := domain.FindProduct(catalog, n.ProductID); found {
			out = append(out, p)
		}
	}
	return out, true
}

// ContentSimilarity computes similarity from product attributes.
type ContentSimilarity struct{}

// Similar ranks every other catalog product by ContentScore. ok is false
// when productID is not in the catalog.
func (ContentSimilarity) Similar(productID string, catalog []domain.Product, limit int) ([]domain.Product, bool) {
	target, found := domain.FindProduct(catalog, productID)
	if !found {
		return nil, false
	}

	scored := make([]scoredProduct, 0, len(catalog))
	for i := range catalog {
		if catalog[i].ID == productID {
			continue
		}
		scored = append(scored, scoredProduct{product: catalog[i], score: ContentScore(&target, &catalog[i])})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	n := max(min(limit, len(scored)), 0)
	out := make([]domain.Product, n)
	for i := range n {
		out[i] = scored[i].product
	}
	return out, true
}

// ContentScore rates how alike two products are, in [0,1].
func ContentScore(a, b *domain.Product) float64 {
	var score float64
	if a.Category == b.Category {
		score += SameCategoryWeight
	}
	if a.Brand == b.Brand {
		score += SameBrandWeight
	}

	if highest := math.Max(a.Price, b.Price); highest > 0 {
		score += PriceAffinityWeight * (1 - math.Abs(a.Price-b.Price)/highest)
	} else {
		score += PriceAffinityWeight
	}

	shared := 0
	for _, tag := range distinct(a.Tags) {
		if b.HasTag(tag) {
			shared++
		}
	}
	score += TagOverlapWeight * float64(shared) / float64(max(len(a.Tags), len(b.Tags), 1))

	return score
}

func distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ChainSimilarity asks each strategy in turn and returns the first answer.
type ChainSimilarity []SimilarityStrategy

// Similar returns the first strategy's answer that is ok.
func (c ChainSimilarity) Similar(productID string, catalog []domain.Product, limit int) ([]domain.Product, bool) {
	for _, s := range c {
		if products, ok := s.Similar(productID, catalog, limit); ok {
			return products, true
		}
	}
	return nil, false
}
