package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

var (
	trackDuration time.Duration
	trackRating   float64
	trackClicked  []string
)

var trackCmd = &cobra.Command{
	Use:   "track [view|purchase|wishlist|search] [product-id|query]",
	Short: "Record a shopper interaction",
	Long: `Records what the shopper did so recommendations can learn from it.

Examples:
  shopsearch track view 1 --duration 45s
  shopsearch track purchase 3 --rating 5
  shopsearch track wishlist 2
  shopsearch track search "silk dress" --clicked 1,5`,
	Args: cobra.ExactArgs(2),
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().DurationVar(&trackDuration, "duration", 0, "time spent viewing the product")
	trackCmd.Flags().Float64Var(&trackRating, "rating", 0, "rating given with a purchase (1-5)")
	trackCmd.Flags().StringSliceVar(&trackClicked, "clicked", nil, "product IDs opened from a search")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	if personalizationService == nil {
		return errors.New("personalization service not configured")
	}

	kind := domain.InteractionType(args[0])
	if !kind.IsValid() {
		return fmt.Errorf("unknown interaction %q: %w", args[0], domain.ErrUnsupportedType)
	}

	interaction := domain.Interaction{Type: kind}
	switch kind {
	case domain.InteractionSearch:
		interaction.Query = args[1]
		interaction.ResultsClicked = trackClicked
	default:
		interaction.ProductID = args[1]
		interaction.Duration = trackDuration
		if cmd.Flags().Changed("rating") {
			interaction.Rating = domain.Float(trackRating)
		}
	}

	if err := personalizationService.TrackInteraction(currentUser(), interaction); err != nil {
		if errors.Is(err, domain.ErrPersonalizationDisabled) {
			cmd.Println("Personalization is off; nothing recorded.")
			return nil
		}
		return fmt.Errorf("failed to record %s: %w", kind, err)
	}
	if err := persist(cmd); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	cmd.Printf("Recorded %s for %s.\n", kind, currentUser())
	return nil
}
