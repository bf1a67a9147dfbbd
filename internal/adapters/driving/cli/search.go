package cli

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/logger"
)

var (
	searchLimit       int
	searchJSON        bool
	searchSort        string
	searchCategory    string
	searchBrand       string
	searchMinPrice    float64
	searchMaxPrice    float64
	searchColors      []string
	searchSizes       []string
	searchMinRating   float64
	searchInStock     bool
	searchFacets      bool
	searchPersonalize bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the product catalog",
	Long: `Searches product names, descriptions, brands, categories and tags.
Typos are tolerated and synonyms expand the query ("sneakers" also finds
shoes). An empty query lists the whole catalog, which is useful with filters.

Sort options: relevance, price-low-high, price-high-low, rating, newest,
name-a-z, name-z-a.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	f.BoolVar(&searchJSON, "json", false, "output results as JSON")
	f.StringVarP(&searchSort, "sort", "s", string(domain.SortRelevance), "sort order")
	f.StringVar(&searchCategory, "category", "", "only this category")
	f.StringVar(&searchBrand, "brand", "", "only this brand")
	f.Float64Var(&searchMinPrice, "min-price", 0, "lowest price")
	f.Float64Var(&searchMaxPrice, "max-price", 0, "highest price")
	f.StringSliceVar(&searchColors, "color", nil, "any of these colours (repeatable)")
	f.StringSliceVar(&searchSizes, "size", nil, "any of these sizes (repeatable)")
	f.Float64Var(&searchMinRating, "min-rating", 0, "minimum rating; unrated products pass")
	f.BoolVar(&searchInStock, "in-stock", false, "only in-stock products (--in-stock=false for sold out)")
	f.BoolVar(&searchFacets, "facets", false, "show facet counts")
	f.BoolVar(&searchPersonalize, "personalize", false, "reorder by the shopper's saved preferences")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	sortBy := domain.SortOption(searchSort)
	if !sortBy.IsValid() {
		return fmt.Errorf("unknown sort %q: %w", searchSort, domain.ErrUnsupportedType)
	}

	catalog, err := loadCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	result := searchService.SearchProducts(query, catalog, searchFilters(cmd), sortBy)

	if searchPersonalize && personalizationService != nil && sortBy.String() == string(domain.SortRelevance) {
		result.Products = personalizationService.SortOrder(currentUser(), result.Products)
	}

	if strings.TrimSpace(query) != "" {
		trackSearch(query)
	}
	if err := persist(cmd); err != nil {
		logger.Warn("failed to save search history: %v", err)
	}

	if len(result.Products) > searchLimit && searchLimit > 0 {
		result.Products = result.Products[:searchLimit]
	}

	if searchJSON {
		return printJSON(cmd, result)
	}
	return outputSearchTable(cmd, query, result)
}

// searchFilters builds filters from the flags the user actually set.
func searchFilters(cmd *cobra.Command) domain.SearchFilters {
	flags := cmd.Flags()
	filters := domain.SearchFilters{
		Category: searchCategory,
		Brand:    searchBrand,
		Colors:   searchColors,
		Sizes:    searchSizes,
	}
	if flags.Changed("min-price") || flags.Changed("max-price") {
		r := domain.PriceRange{Min: 0, Max: math.MaxFloat64}
		if flags.Changed("min-price") {
			r.Min = searchMinPrice
		}
		if flags.Changed("max-price") {
			r.Max = searchMaxPrice
		}
		filters.PriceRange = &r
	}
	if flags.Changed("min-rating") {
		filters.MinRating = domain.Float(searchMinRating)
	}
	if flags.Changed("in-stock") {
		inStock := searchInStock
		filters.InStock = &inStock
	}
	return filters
}

// trackSearch records the query on the shopper's profile.
func trackSearch(query string) {
	if personalizationService == nil {
		return
	}
	err := personalizationService.TrackInteraction(currentUser(), domain.Interaction{
		Type:  domain.InteractionSearch,
		Query: query,
	})
	if err != nil && !errors.Is(err, domain.ErrPersonalizationDisabled) {
		logger.Warn("failed to track search: %v", err)
	}
}

func outputSearchTable(cmd *cobra.Command, query string, result domain.SearchResult) error {
	if result.TotalCount == 0 {
		if query == "" {
			cmd.Println("No products match these filters.")
		} else {
			cmd.Printf("No products found for %q.\n", query)
		}
		printSuggestions(cmd, result.Suggestions)
		return nil
	}

	cmd.Printf("Found %d products", result.TotalCount)
	if len(result.Products) < result.TotalCount {
		cmd.Printf(" (showing %d)", len(result.Products))
	}
	cmd.Println(":")
	cmd.Println()
	printProducts(cmd, result.Products)

	if searchFacets {
		cmd.Println()
		cmd.Println("Refine:")
		printFacets(cmd, result.Facets)
	}
	printSuggestions(cmd, result.Suggestions)
	return nil
}

func printSuggestions(cmd *cobra.Command, suggestions []domain.SearchSuggestion) {
	if len(suggestions) == 0 {
		return
	}
	texts := make([]string, len(suggestions))
	for i, s := range suggestions {
		texts[i] = s.Text
	}
	cmd.Println()
	cmd.Printf("Try also: %s\n", strings.Join(texts, ", "))
}
