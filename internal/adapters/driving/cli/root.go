// Package cli provides the shopsearch command line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
	"github.com/custodia-labs/shopsearch/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Services holds everything the commands need. It is built once by the
// composition root and handed over with SetServices.
type Services struct {
	Search          driving.SearchService
	Recommendations driving.RecommendationService
	Personalization driving.PersonalizationService
	Profiles        driving.ProfileService
	Settings        driving.SettingsService
	Catalog         driven.Catalog

	// Autosaver persists state during long-running commands. Optional.
	Autosaver driving.Autosaver

	// OnCatalogChange runs after a watched catalog file reloads. Optional.
	OnCatalogChange func(ctx context.Context)

	// UserID is the local shopper.
	UserID string
}

var (
	searchService          driving.SearchService
	recommendationService  driving.RecommendationService
	personalizationService driving.PersonalizationService
	profileService         driving.ProfileService
	settingsService        driving.SettingsService
	catalogSource          driven.Catalog
	autosaver              driving.Autosaver
	onCatalogChange        func(ctx context.Context)
	defaultUserID          string
)

var (
	verbose bool
	userID  string
)

var errNoCatalog = errors.New("catalog not configured")

var rootCmd = &cobra.Command{
	Use:   "shopsearch",
	Short: "Product search and recommendations for your catalog",
	Long: `shopsearch searches a product catalog with typo tolerance and synonyms,
suggests queries as you type, and recommends products from what a shopper
has viewed, bought and wishlisted.

Run without arguments to open the interactive search UI.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print ranking and storage details to stderr")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "shopper ID (defaults to the configured local shopper)")
}

// SetServices wires the core services into the commands.
func SetServices(s Services) {
	searchService = s.Search
	recommendationService = s.Recommendations
	personalizationService = s.Personalization
	profileService = s.Profiles
	settingsService = s.Settings
	catalogSource = s.Catalog
	autosaver = s.Autosaver
	onCatalogChange = s.OnCatalogChange
	defaultUserID = s.UserID
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// currentUser returns the --user flag or the configured local shopper.
func currentUser() string {
	if userID != "" {
		return userID
	}
	return defaultUserID
}

// loadCatalog fetches the current product list.
func loadCatalog(ctx context.Context) ([]domain.Product, error) {
	if catalogSource == nil {
		return nil, errNoCatalog
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return catalogSource.Products(ctx)
}

// persist saves engine state after a mutating command.
func persist(cmd *cobra.Command) error {
	if profileService == nil {
		return nil
	}
	return profileService.Persist(commandContext(cmd))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// startBackground runs the autosaver and the catalog watcher for a
// long-running command. listeners run after onCatalogChange on every
// reload. The returned func stops both.
func startBackground(ctx context.Context, listeners ...func()) func() {
	ctx, cancel := context.WithCancel(ctx)

	if autosaver != nil {
		go func() {
			if err := autosaver.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("autosave stopped: %v", err)
			}
		}()
	}

	if watchable, ok := catalogSource.(driven.WatchableCatalog); ok {
		go func() {
			err := watchable.Watch(ctx, func() {
				if onCatalogChange != nil {
					onCatalogChange(ctx)
				}
				for _, l := range listeners {
					l()
				}
			})
			if err != nil {
				logger.Warn("catalog watch stopped: %v", err)
			}
		}()
	}

	return func() {
		if autosaver != nil {
			autosaver.Stop()
		}
		cancel()
	}
}
