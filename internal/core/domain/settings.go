package domain

// StorageBackend selects where profiles and the query log are persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists to a SQLite database file. It is the default.
	StorageSQLite StorageBackend = "sqlite"

	// StorageBadger persists to a Badger key-value directory.
	StorageBadger StorageBackend = "badger"

	// StorageMemory keeps state for the lifetime of the process only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageBadger, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (single file)"
	case StorageBadger:
		return "Badger (key-value directory)"
	case StorageMemory:
		return "Memory (not persisted)"
	default:
		return "Unknown"
	}
}

// AllStorageBackends returns every supported backend.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageSQLite, StorageBadger, StorageMemory}
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Backend is the persistence backend.
	Backend StorageBackend

	// DataDir is where backend files live. Empty means ~/.shopsearch/data.
	DataDir string
}

// CatalogSettings holds catalog source configuration.
type CatalogSettings struct {
	// Path is a JSON catalog file. Empty means the built-in catalog.
	Path string
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// AutocompleteLimit is the default number of suggestions.
	AutocompleteLimit int

	// SeedPopularQueries seeds the popularity log on first run.
	SeedPopularQueries bool
}

// RecommendationSettings holds recommendation defaults.
type RecommendationSettings struct {
	// Limit is the default number of personalized recommendations.
	Limit int

	// SimilarLimit is the default number of similar products.
	SimilarLimit int
}

// PersonalizationSettings holds personalization toggles.
type PersonalizationSettings struct {
	// Enabled turns personalized ranking on.
	Enabled bool

	// AdaptiveSorting reorders listings by explicit preferences.
	AdaptiveSorting bool
}

// MCPSettings holds MCP server limits.
type MCPSettings struct {
	// RatePerSecond is the sustained tool-call rate.
	RatePerSecond float64

	// Burst is the maximum burst of tool calls.
	Burst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// UserID identifies the local shopper.
	UserID string

	Storage         StorageSettings
	Catalog         CatalogSettings
	Search          SearchSettings
	Recommendation  RecommendationSettings
	Personalization PersonalizationSettings
	MCP             MCPSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// UserID is left empty; the settings service generates one on first run.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Search: SearchSettings{
			AutocompleteLimit:  8,
			SeedPopularQueries: true,
		},
		Recommendation: RecommendationSettings{
			Limit:        10,
			SimilarLimit: 6,
		},
		Personalization: PersonalizationSettings{
			Enabled:         true,
			AdaptiveSorting: true,
		},
		MCP: MCPSettings{
			RatePerSecond: 20,
			Burst:         40,
		},
	}
}
