package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyUserID             = "user.id"
	keyStorageBackend     = "storage.backend"
	keyStorageDataDir     = "storage.data_dir"
	keyCatalogPath        = "catalog.path"
	keyAutocompleteLimit  = "search.autocomplete_limit"
	keySeedPopularQueries = "search.seed_popular_queries"
	keyRecommendLimit     = "recommendation.limit"
	keySimilarLimit       = "recommendation.similar_limit"
	keyPersonalization    = "personalization.enabled"
	keyAdaptiveSorting    = "personalization.adaptive_sorting"
	keyMCPRate            = "mcp.rate_per_second"
	keyMCPBurst           = "mcp.burst"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	newID       func() string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		newID:       uuid.NewString,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		UserID: s.configStore.GetString(keyUserID),
		Storage: domain.StorageSettings{
			Backend: s.getStorageBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir), // Empty means the default data dir
		},
		Catalog: domain.CatalogSettings{
			Path: s.configStore.GetString(keyCatalogPath),
		},
		Search: domain.SearchSettings{
			AutocompleteLimit:  s.getInt(keyAutocompleteLimit, defaults.Search.AutocompleteLimit),
			SeedPopularQueries: s.getBool(keySeedPopularQueries, defaults.Search.SeedPopularQueries),
		},
		Recommendation: domain.RecommendationSettings{
			Limit:        s.getInt(keyRecommendLimit, defaults.Recommendation.Limit),
			SimilarLimit: s.getInt(keySimilarLimit, defaults.Recommendation.SimilarLimit),
		},
		Personalization: domain.PersonalizationSettings{
			Enabled:         s.getBool(keyPersonalization, defaults.Personalization.Enabled),
			AdaptiveSorting: s.getBool(keyAdaptiveSorting, defaults.Personalization.AdaptiveSorting),
		},
		MCP: domain.MCPSettings{
			RatePerSecond: s.getFloat(keyMCPRate, defaults.MCP.RatePerSecond),
			Burst:         s.getInt(keyMCPBurst, defaults.MCP.Burst),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings.UserID != "" {
		if err := s.configStore.Set(keyUserID, settings.UserID); err != nil {
			return fmt.Errorf("save user id: %w", err)
		}
	}

	// Storage and catalog
	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.configStore.Set(keyStorageDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save storage data_dir: %w", err)
	}
	if err := s.configStore.Set(keyCatalogPath, settings.Catalog.Path); err != nil {
		return fmt.Errorf("save catalog path: %w", err)
	}

	// Search
	if err := s.configStore.Set(keyAutocompleteLimit, settings.Search.AutocompleteLimit); err != nil {
		return fmt.Errorf("save autocomplete limit: %w", err)
	}
	if err := s.configStore.Set(keySeedPopularQueries, settings.Search.SeedPopularQueries); err != nil {
		return fmt.Errorf("save seed popular queries: %w", err)
	}

	// Recommendation
	if err := s.configStore.Set(keyRecommendLimit, settings.Recommendation.Limit); err != nil {
		return fmt.Errorf("save recommendation limit: %w", err)
	}
	if err := s.configStore.Set(keySimilarLimit, settings.Recommendation.SimilarLimit); err != nil {
		return fmt.Errorf("save similar limit: %w", err)
	}

	// Personalization
	if err := s.configStore.Set(keyPersonalization, settings.Personalization.Enabled); err != nil {
		return fmt.Errorf("save personalization enabled: %w", err)
	}
	if err := s.configStore.Set(keyAdaptiveSorting, settings.Personalization.AdaptiveSorting); err != nil {
		return fmt.Errorf("save adaptive sorting: %w", err)
	}

	// MCP
	if err := s.configStore.Set(keyMCPRate, settings.MCP.RatePerSecond); err != nil {
		return fmt.Errorf("save mcp rate: %w", err)
	}
	if err := s.configStore.Set(keyMCPBurst, settings.MCP.Burst); err != nil {
		return fmt.Errorf("save mcp burst: %w", err)
	}

	return nil
}

// SetStorageBackend updates the persistence backend.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("invalid storage backend: %s", backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Storage.Backend = backend
	return s.Save(settings)
}

// SetCatalogPath points the catalog at a JSON file.
func (s *SettingsService) SetCatalogPath(path string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Catalog.Path = path
	return s.Save(settings)
}

// EnsureUserID returns the configured shopper ID, generating one on first run.
func (s *SettingsService) EnsureUserID() (string, error) {
	if id := s.configStore.GetString(keyUserID); id != "" {
		return id, nil
	}

	id := s.newID()
	if err := s.configStore.Set(keyUserID, id); err != nil {
		return "", fmt.Errorf("save user id: %w", err)
	}
	return id, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStorageBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
