package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

func TestContentScore(t *testing.T) {
	catalog := testCatalog()

	assert.InDelta(t, 0.776, ContentScore(&catalog[4], &catalog[5]), 1e-3)
	assert.InDelta(t, 1.0, ContentScore(&catalog[0], &catalog[0]), 1e-9)
	assert.InDelta(t, ContentScore(&catalog[1], &catalog[3]), ContentScore(&catalog[3], &catalog[1]), 1e-9)
}

func TestContentScore_ZeroPricesAndNoTags(t *testing.T) {
	a := &domain.Product{Category: "x"}
	b := &domain.Product{Category: "y"}

	assert.InDelta(t, SameBrandWeight+PriceAffinityWeight, ContentScore(a, b), 1e-9)
}

func TestTableSimilarity(t *testing.T) {
	table := NewTableSimilarity([]domain.ProductSimilarity{{
		ProductID: "1",
		SimilarProducts: []domain.SimilarProduct{
			{ProductID: "3", Score: 0.2},
			{ProductID: "6", Score: 0.9},
			{ProductID: "ghost", Score: 0.95},
		},
	}})

	got, ok := table.Similar("1", testCatalog(), 5)
	assert.True(t, ok)
	assert.Equal(t, []string{"6", "3"}, productIDs(got))

	_, ok = table.Similar("2", testCatalog(), 5)
	assert.False(t, ok)
}

func TestContentSimilarity_UnknownProduct(t *testing.T) {
	got, ok := ContentSimilarity{}.Similar("nope", testCatalog(), 3)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestContentSimilarity_ExcludesSelf(t *testing.T) {
	got, ok := ContentSimilarity{}.Similar("1", testCatalog(), 10)
	assert.True(t, ok)
	assert.Len(t, got, 5)
	assert.NotContains(t, productIDs(got), "1")
}

func TestChainSimilarity(t *testing.T) {
	chain := ChainSimilarity{NewTableSimilarity(SeedSimilarity()), ContentSimilarity{}}

	fromTable, ok := chain.Similar("1", testCatalog(), 1)
	assert.True(t, ok)
	assert.Equal(t, []string{"2"}, productIDs(fromTable))

	fromContent, ok := chain.Similar("6", testCatalog(), 1)
	assert.True(t, ok)
	assert.Equal(t, []string{"5"}, productIDs(fromContent))

	_, ok = ChainSimilarity{}.Similar("1", testCatalog(), 1)
	assert.False(t, ok)
}
