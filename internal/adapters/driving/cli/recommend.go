package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

var (
	recommendLimit    int
	recommendJSON     bool
	recommendTime     string
	recommendSeason   string
	recommendOccasion string
	recommendWeather  string
	recommendLocation string
	recommendCurrent  string
	similarLimit      int
	similarJSON       bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend products for the shopper",
	Long: `Ranks the catalog for the shopper from their views, purchases, wishlist
and searches, blended with trends and the situation. Time of day and season
default to now.

Occasions: casual, formal, work, party, sport.
Weather:   sunny, rainy, cold, hot.`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

var similarCmd = &cobra.Command{
	Use:   "similar [product-id]",
	Short: "Show products similar to a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	f := recommendCmd.Flags()
	f.IntVarP(&recommendLimit, "limit", "n", 10, "maximum number of products")
	f.BoolVar(&recommendJSON, "json", false, "output products as JSON")
	f.StringVar(&recommendTime, "time", "", "time of day: morning, afternoon, evening, night")
	f.StringVar(&recommendSeason, "season", "", "season: spring, summer, fall, winter")
	f.StringVar(&recommendOccasion, "occasion", "", "occasion")
	f.StringVar(&recommendWeather, "weather", "", "weather")
	f.StringVar(&recommendLocation, "location", "", "shopper location")
	f.StringVar(&recommendCurrent, "viewing", "", "ID of the product being viewed")
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", 6, "maximum number of products")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "output products as JSON")
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(similarCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if personalizationService == nil {
		return errors.New("recommendation service not configured")
	}

	catalog, err := loadCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	rctx, err := recommendationContext(catalog)
	if err != nil {
		return err
	}

	products := personalizationService.Recommendations(currentUser(), catalog, rctx, recommendLimit)
	if recommendJSON {
		return printJSON(cmd, products)
	}

	if len(products) == 0 {
		cmd.Println("No recommendations.")
		return nil
	}
	cmd.Printf("Recommended for %s:\n\n", currentUser())
	printProducts(cmd, products)
	return nil
}

func recommendationContext(catalog []domain.Product) (domain.RecommendationContext, error) {
	rctx := domain.RecommendationContext{
		Location:  recommendLocation,
		TimeOfDay: domain.TimeOfDay(recommendTime),
		Season:    domain.Season(recommendSeason),
		Occasion:  domain.Occasion(recommendOccasion),
		Weather:   domain.Weather(recommendWeather),
	}
	if rctx.TimeOfDay != "" && !rctx.TimeOfDay.IsValid() {
		return rctx, fmt.Errorf("unknown time of day %q: %w", recommendTime, domain.ErrInvalidInput)
	}
	if rctx.Season != "" && !rctx.Season.IsValid() {
		return rctx, fmt.Errorf("unknown season %q: %w", recommendSeason, domain.ErrInvalidInput)
	}
	if !rctx.Occasion.IsValid() {
		return rctx, fmt.Errorf("unknown occasion %q: %w", recommendOccasion, domain.ErrInvalidInput)
	}
	if !rctx.Weather.IsValid() {
		return rctx, fmt.Errorf("unknown weather %q: %w", recommendWeather, domain.ErrInvalidInput)
	}
	if recommendCurrent != "" {
		p, ok := domain.FindProduct(catalog, recommendCurrent)
		if !ok {
			return rctx, fmt.Errorf("product %s: %w", recommendCurrent, domain.ErrNotFound)
		}
		rctx.CurrentProduct = &p
	}
	return rctx, nil
}

func runSimilar(cmd *cobra.Command, args []string) error {
	if personalizationService == nil {
		return errors.New("recommendation service not configured")
	}

	catalog, err := loadCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	product, ok := domain.FindProduct(catalog, args[0])
	if !ok {
		return fmt.Errorf("product %s: %w", args[0], domain.ErrNotFound)
	}

	products := personalizationService.SimilarProducts(currentUser(), product.ID, catalog, similarLimit)
	if similarJSON {
		return printJSON(cmd, products)
	}

	if len(products) == 0 {
		cmd.Printf("Nothing similar to %s.\n", product.Name)
		return nil
	}
	cmd.Printf("Similar to %s:\n\n", product.Name)
	printProducts(cmd, products)
	return nil
}
