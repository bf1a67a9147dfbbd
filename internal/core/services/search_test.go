package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

func scenarioCatalog() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Name: "Silk Midi Dress", Category: "women", Brand: "Fashion Studio",
			Tags: []string{"silk", "midi", "elegant"}, Price: 299,
		},
		{
			ID: "5", Name: "Cotton T-Shirt", Category: "men", Brand: "Fashion Studio",
			Tags: []string{"cotton", "casual"}, Price: 49,
		},
	}
}

func TestSearchEngine_SilkDressScenario(t *testing.T) {
	engine := NewSearchEngine()

	result := engine.SearchProducts("silk dress", scenarioCatalog(), domain.SearchFilters{}, "")

	require.Equal(t, 1, result.TotalCount)
	assert.Equal(t, []string{"1"}, productIDs(result.Products))
}

func TestSearchEngine_EmptyQueryWithPriceFilter(t *testing.T) {
	engine := NewSearchEngine()
	filters := domain.SearchFilters{PriceRange: &domain.PriceRange{Min: 0, Max: 100}}

	result := engine.SearchProducts("", scenarioCatalog(), filters, "")

	assert.Equal(t, []string{"5"}, productIDs(result.Products))
	assert.Equal(t, 1, result.TotalCount)
}

func TestSearchEngine_EmptyQueryKeepsCatalogOrder(t *testing.T) {
	engine := NewSearchEngine()
	catalog := testCatalog()

	result := engine.SearchProducts("   ", catalog, domain.SearchFilters{}, domain.SortRelevance)

	assert.Equal(t, productIDs(catalog), productIDs(result.Products))
	assert.Equal(t, len(catalog), result.TotalCount)
	assert.Empty(t, engine.SearchHistory(10), "blank query must not be logged")
}

func TestSearchEngine_InvertedPriceRangeMatchesNothing(t *testing.T) {
	engine := NewSearchEngine()
	filters := domain.SearchFilters{PriceRange: &domain.PriceRange{Min: 500, Max: 100}}

	result := engine.SearchProducts("", testCatalog(), filters, "")

	assert.Empty(t, result.Products)
	assert.Equal(t, 0, result.TotalCount)
	for _, bucket := range result.Facets.PriceRanges {
		assert.Zero(t, bucket.Count)
	}
}

func TestSearchEngine_DoesNotMutateCatalog(t *testing.T) {
	engine := NewSearchEngine()
	catalog := testCatalog()
	before := productIDs(catalog)

	engine.SearchProducts("", catalog, domain.SearchFilters{}, domain.SortPriceHighLow)

	assert.Equal(t, before, productIDs(catalog))
}

func TestSearchEngine_Filters(t *testing.T) {
	inStock := true
	tests := []struct {
		name    string
		filters domain.SearchFilters
		want    []string
	}{
		{"category", domain.SearchFilters{Category: "men"}, []string{"5", "6"}},
		{"brand miss", domain.SearchFilters{Brand: "Luxury Brand"}, []string{}},
		{"in stock", domain.SearchFilters{InStock: &inStock}, []string{"1", "2", "3", "5", "6"}},
		{"price inclusive", domain.SearchFilters{PriceRange: &domain.PriceRange{Min: 189, Max: 299}}, []string{"1", "2"}},
		{"rating keeps unrated", domain.SearchFilters{MinRating: domain.Float(4.7)}, []string{"1", "3", "4", "5"}},
		{"colors any of", domain.SearchFilters{Colors: []string{"navy", "blue"}}, []string{"1", "4", "6"}},
		{"sizes any of", domain.SearchFilters{Sizes: []string{"XL"}}, []string{"5"}},
		{"combined", domain.SearchFilters{Category: "women", Sizes: []string{"L"}}, []string{"1", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewSearchEngine()
			result := engine.SearchProducts("", testCatalog(), tt.filters, "")
			assert.Equal(t, tt.want, productIDs(result.Products))
			assert.Equal(t, len(tt.want), result.TotalCount)
		})
	}
}

func TestSearchEngine_Sorts(t *testing.T) {
	tests := []struct {
		sort domain.SortOption
		want []string
	}{
		{domain.SortPriceLowHigh, []string{"5", "6", "2", "1", "3", "4"}},
		{domain.SortPriceHighLow, []string{"4", "3", "1", "2", "6", "5"}},
		{domain.SortRating, []string{"3", "1", "4", "2", "6", "5"}},
		{domain.SortNewest, []string{"2", "1", "3", "4", "5", "6"}},
		{domain.SortNameAZ, []string{"2", "5", "6", "3", "1", "4"}},
		{domain.SortNameZA, []string{"4", "1", "3", "6", "5", "2"}},
		{domain.SortOption("bogus"), []string{"1", "2", "3", "4", "5", "6"}},
	}

	for _, tt := range tests {
		t.Run(tt.sort.String(), func(t *testing.T) {
			engine := NewSearchEngine()
			result := engine.SearchProducts("", testCatalog(), domain.SearchFilters{}, tt.sort)
			assert.Equal(t, tt.want, productIDs(result.Products))
		})
	}
}

func TestSearchEngine_RelevanceOrder(t *testing.T) {
	engine := NewSearchEngine()

	result := engine.SearchProducts("leather", testCatalog(), domain.SearchFilters{}, "")

	require.NotEmpty(t, result.Products)
	assert.Equal(t, "3", result.Products[0].ID)
}

func TestSearchEngine_SynonymMatch(t *testing.T) {
	engine := NewSearchEngine()

	result := engine.SearchProducts("bag", testCatalog(), domain.SearchFilters{}, "")

	assert.Contains(t, productIDs(result.Products), "3")
}

func TestSearchEngine_FuzzyMatch(t *testing.T) {
	engine := NewSearchEngine()

	result := engine.SearchProducts("cashmire", testCatalog(), domain.SearchFilters{}, "")

	require.NotEmpty(t, result.Products)
	assert.Equal(t, "2", result.Products[0].ID)
}

func TestSearchEngine_TotalCountAndFacetsMatchProducts(t *testing.T) {
	queries := []string{"", "silk", "dress", "cotton casual", "elegant", "zzz", "wool coat"}

	for _, q := range queries {
		t.Run(fmt.Sprintf("q=%q", q), func(t *testing.T) {
			engine := NewSearchEngine()
			result := engine.SearchProducts(q, testCatalog(), domain.SearchFilters{}, "")

			assert.Equal(t, len(result.Products), result.TotalCount)

			bucketSum := 0
			for _, b := range result.Facets.PriceRanges {
				bucketSum += b.Count
			}
			assert.Equal(t, result.TotalCount, bucketSum)

			categorySum := 0
			for _, c := range result.Facets.Categories {
				categorySum += c.Count
			}
			assert.Equal(t, result.TotalCount, categorySum)
		})
	}
}

func TestSearchEngine_AttachesSuggestions(t *testing.T) {
	engine := NewSearchEngine()

	result := engine.SearchProducts("si", testCatalog(), domain.SearchFilters{}, "")

	require.NotEmpty(t, result.Suggestions)
}

func TestSearchEngine_TrendingScenario(t *testing.T) {
	engine := NewSearchEngine()

	for range 3 {
		engine.SearchProducts("black dress", testCatalog(), domain.SearchFilters{}, "")
	}

	assert.Equal(t, []string{"black dress"}, engine.TrendingQueries(1))
	assert.Equal(t, []domain.PopularQuery{{Query: "black dress", Count: 3}}, engine.PopularQueries(1))
}

func TestSearchEngine_LogKeepsRawQuery(t *testing.T) {
	engine := NewSearchEngine()

	engine.SearchProducts("Silk Dress", testCatalog(), domain.SearchFilters{}, "")
	engine.SearchProducts("silk dress", testCatalog(), domain.SearchFilters{}, "")

	assert.Equal(t, []string{"silk dress", "Silk Dress"}, engine.SearchHistory(10))
	assert.Len(t, engine.PopularQueries(10), 2)
}

func TestSearchEngine_HistoryBounded(t *testing.T) {
	engine := NewSearchEngine()

	for i := range MaxSearchHistory + 10 {
		engine.SearchProducts(fmt.Sprintf("q%d", i), nil, domain.SearchFilters{}, "")
	}

	history := engine.SearchHistory(1000)
	require.Len(t, history, MaxSearchHistory)
	assert.Equal(t, fmt.Sprintf("q%d", MaxSearchHistory+9), history[0])
	assert.Equal(t, "q10", history[len(history)-1])
	assert.Equal(t, 1, engine.PopularQueries(1000)[0].Count)
	assert.Len(t, engine.PopularQueries(1000), MaxSearchHistory+10)
}

func TestSearchEngine_DefaultLimits(t *testing.T) {
	engine := NewSearchEngine(WithSeedQueries(DefaultPopularQueries()))

	assert.Len(t, engine.TrendingQueries(0), 6)
	assert.Equal(t, "silk dress", engine.TrendingQueries(0)[0])
	assert.Empty(t, engine.SearchHistory(-1))
}

func TestSearchEngine_Autocomplete(t *testing.T) {
	t.Run("short query is empty", func(t *testing.T) {
		engine := NewSearchEngine(WithSeedQueries(DefaultPopularQueries()))
		for _, q := range []string{"", "s", " s ", "   "} {
			assert.Empty(t, engine.AutocompleteSuggestions(q, 8), "query %q", q)
		}
	})

	t.Run("si finds the silk dress", func(t *testing.T) {
		engine := NewSearchEngine()
		suggestions := engine.AutocompleteSuggestions("si", 8)

		found := false
		for _, s := range suggestions {
			if s.Type == domain.SuggestionProduct && s.Text == "Silk Midi Dress" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("pools capped and ranked by popularity", func(t *testing.T) {
		engine := NewSearchEngine(WithSeedQueries([]domain.PopularQuery{
			{Query: "dress a", Count: 200},
			{Query: "dress b", Count: 190},
			{Query: "dress c", Count: 180},
			{Query: "dress d", Count: 170},
		}))
		suggestions := engine.AutocompleteSuggestions("dress", 20)

		var queries int
		for i, s := range suggestions {
			if i > 0 {
				assert.GreaterOrEqual(t, suggestions[i-1].Popularity, s.Popularity)
			}
			if s.Type == domain.SuggestionQuery {
				queries++
			}
		}
		assert.Equal(t, 3, queries)
		require.Len(t, suggestions, 4)
		assert.Equal(t, "query-dress a", suggestions[0].ID)
		assert.Equal(t, 200, suggestions[0].Popularity)
		assert.Equal(t, "product-0", suggestions[3].ID)
	})

	t.Run("limit truncates", func(t *testing.T) {
		engine := NewSearchEngine(WithSeedQueries(DefaultPopularQueries()))
		assert.Len(t, engine.AutocompleteSuggestions("es", 2), 2)
	})

	t.Run("case insensitive", func(t *testing.T) {
		engine := NewSearchEngine()
		suggestions := engine.AutocompleteSuggestions("FASHION", 8)
		require.Len(t, suggestions, 1)
		assert.Equal(t, domain.SuggestionBrand, suggestions[0].Type)
		assert.Equal(t, "brand-0", suggestions[0].ID)
		assert.Equal(t, 70, suggestions[0].Popularity)
	})
}

func TestSearchEngine_CatalogVocabulary(t *testing.T) {
	engine := NewSearchEngine(WithVocabulary(Vocabulary{ProductNames: []string{"Linen Shirt"}}))

	suggestions := engine.AutocompleteSuggestions("linen", 8)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Linen Shirt", suggestions[0].Text)

	engine.SetVocabulary(VocabularyFromCatalog(testCatalog()))
	assert.Empty(t, engine.AutocompleteSuggestions("linen", 8))
}

func TestSearchEngine_SnapshotRestore(t *testing.T) {
	engine := NewSearchEngine()
	engine.SearchProducts("wool", testCatalog(), domain.SearchFilters{}, "")
	engine.SearchProducts("wool", testCatalog(), domain.SearchFilters{}, "")
	engine.SearchProducts("silk", testCatalog(), domain.SearchFilters{}, "")

	snapshot := engine.QueryLogSnapshot()

	restored := NewSearchEngine()
	restored.RestoreQueryLog(snapshot)

	assert.Equal(t, engine.SearchHistory(10), restored.SearchHistory(10))
	assert.Equal(t, engine.PopularQueries(10), restored.PopularQueries(10))
}

func TestSearchEngine_ConcurrentSearches(t *testing.T) {
	engine := NewSearchEngine()
	catalog := testCatalog()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			engine.SearchProducts(fmt.Sprintf("q%d", i%4), catalog, domain.SearchFilters{}, "")
			engine.AutocompleteSuggestions("q1", 8)
		}(i)
	}
	wg.Wait()

	total := 0
	for _, pq := range engine.PopularQueries(10) {
		total += pq.Count
	}
	assert.Equal(t, 20, total)
}

func TestSearchEngine_VocabularySwapDuringAutocomplete(t *testing.T) {
	engine := NewSearchEngine()
	catalog := testCatalog()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 200 {
			engine.SetVocabulary(VocabularyFromCatalog(catalog))
		}
	}()
	go func() {
		defer wg.Done()
		for range 200 {
			engine.AutocompleteSuggestions("si", 8)
		}
	}()
	wg.Wait()

	suggestions := engine.AutocompleteSuggestions("si", 8)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, domain.SuggestionProduct, suggestions[0].Type)
}
