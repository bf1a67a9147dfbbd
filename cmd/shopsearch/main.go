// Command shopsearch searches a product catalog and recommends products
// from the shopper's activity.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/shopsearch/internal/adapters/driven/catalog/file"
	"github.com/custodia-labs/shopsearch/internal/adapters/driven/catalog/static"
	configfile "github.com/custodia-labs/shopsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shopsearch/internal/adapters/driven/storage/badger"
	"github.com/custodia-labs/shopsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shopsearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/core/services"
	"github.com/custodia-labs/shopsearch/internal/logger"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	userID, err := settingsService.EnsureUserID()
	if err != nil {
		return fmt.Errorf("creating shopper ID: %w", err)
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	profiles, queries, closer, err := openStorage(settings.Storage)
	if err != nil {
		return err
	}
	defer closer.Close()

	catalog, builtin, err := openCatalog(settings.Catalog)
	if err != nil {
		return err
	}
	products, err := catalog.Products(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	synonymStore, err := configfile.NewSynonymStore("", services.DefaultSynonyms())
	if err != nil {
		return fmt.Errorf("opening synonyms: %w", err)
	}
	synonyms, err := synonymStore.Synonyms()
	if err != nil {
		return fmt.Errorf("reading %s: %w", synonymStore.Path(), err)
	}

	searchOpts := []services.SearchOption{
		services.WithSynonyms(synonyms),
		services.WithVocabulary(services.VocabularyFromCatalog(products)),
		services.WithAutocompleteLimit(settings.Search.AutocompleteLimit),
	}
	if settings.Search.SeedPopularQueries {
		searchOpts = append(searchOpts, services.WithSeedQueries(services.DefaultPopularQueries()))
	}
	search := services.NewSearchEngine(searchOpts...)

	var recOpts []services.RecommendationOption
	if builtin {
		recOpts = append(recOpts, services.WithSeedData())
	}
	recommendations := services.NewRecommendationEngine(recOpts...)
	personalization := services.NewPersonalizationEngine(recommendations,
		services.WithDefaultToggles(settings.Personalization.Enabled, settings.Personalization.AdaptiveSorting))

	profileSync := services.NewProfileSync(search, recommendations, personalization, profiles, queries)
	if err := profileSync.Restore(ctx); err != nil {
		logger.Warn("failed to restore profiles: %v", err)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:          search,
		Recommendations: recommendations,
		Personalization: personalization,
		Profiles:        profileSync,
		Settings:        settingsService,
		Catalog:         catalog,
		Autosaver:       services.NewAutosaver(profileSync, services.DefaultAutosaveInterval),
		OnCatalogChange: func(ctx context.Context) {
			products, err := catalog.Products(ctx)
			if err != nil {
				logger.Warn("catalog reload: %v", err)
				return
			}
			search.SetVocabulary(services.VocabularyFromCatalog(products))
			logger.Debug("Catalog reloaded: %d products", len(products))
		},
		UserID: userID,
	})

	return cli.Execute(ctx)
}

// openStorage opens the configured backend. The returned closer releases it.
func openStorage(cfg domain.StorageSettings) (driven.ProfileStore, driven.QueryLogStore, io.Closer, error) {
	switch cfg.Backend {
	case domain.StorageBadger:
		store, err := badger.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening badger store: %w", err)
		}
		return store.ProfileStore(), store.QueryLogStore(), store, nil
	case domain.StorageMemory:
		return memory.NewProfileStore(), memory.NewQueryLogStore(), nopCloser{}, nil
	default:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store.ProfileStore(), store.QueryLogStore(), store, nil
	}
}

// openCatalog returns the configured catalog and whether it is the built-in one.
func openCatalog(cfg domain.CatalogSettings) (driven.Catalog, bool, error) {
	if cfg.Path == "" {
		return static.New(), true, nil
	}
	c, err := file.New(cfg.Path)
	if err != nil {
		return nil, false, fmt.Errorf("opening catalog %s: %w", cfg.Path, err)
	}
	return c, false, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
