package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for shopsearch.

Type to search the catalog live with suggestions, narrow results with
facet filters, open products to see similar items, and browse
recommendations picked for the shopper.

Controls:
  ↑/k, ↓/j - Navigate
  Tab      - Move between query, results and filters
  Enter    - Search / Open
  s        - Change sort order
  w        - Add to wishlist
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the configured services.
func tuiPorts() *tui.Ports {
	ports := tui.NewPorts(searchService, catalogSource, currentUser())
	ports.Personalization = personalizationService
	ports.Settings = settingsService
	return ports
}

// tuiLimits reads list sizes from settings. Zero values keep the view defaults.
func tuiLimits() tui.Limits {
	if settingsService == nil {
		return tui.Limits{}
	}
	settings, err := settingsService.Get()
	if err != nil {
		return tui.Limits{}
	}
	return limitsFrom(settings)
}

func limitsFrom(settings *domain.AppSettings) tui.Limits {
	return tui.Limits{
		Suggestions:     settings.Search.AutocompleteLimit,
		Recommendations: settings.Recommendation.Limit,
		Similar:         settings.Recommendation.SimilarLimit,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(commandContext(cmd)).WithLimits(tuiLimits())

	stop := startBackground(commandContext(cmd), func() {
		app.Send(messages.CatalogChanged{})
	})
	defer stop()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if err := persist(cmd); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
