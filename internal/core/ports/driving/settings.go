package driving

import "github.com/custodia-labs/shopsearch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetStorageBackend updates the persistence backend.
	SetStorageBackend(backend domain.StorageBackend) error

	// SetCatalogPath points the catalog at a JSON file. Empty restores the built-in catalog.
	SetCatalogPath(path string) error

	// EnsureUserID returns the configured shopper ID, generating and saving one if absent.
	EnsureUserID() (string, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
