package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Storage.Backend, settings.Storage.Backend)
	assert.Equal(t, defaults.Search, settings.Search)
	assert.Equal(t, defaults.Recommendation, settings.Recommendation)
	assert.Equal(t, defaults.Personalization, settings.Personalization)
	assert.Equal(t, defaults.MCP, settings.MCP)
	assert.Empty(t, settings.UserID)
	assert.Empty(t, settings.Catalog.Path)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("storage.backend", "badger")
	_ = store.Set("catalog.path", "/tmp/catalog.json")
	_ = store.Set("search.autocomplete_limit", int64(5))
	_ = store.Set("personalization.enabled", false)
	_ = store.Set("mcp.rate_per_second", 2.5)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBadger, settings.Storage.Backend)
	assert.Equal(t, "/tmp/catalog.json", settings.Catalog.Path)
	assert.Equal(t, 5, settings.Search.AutocompleteLimit)
	assert.False(t, settings.Personalization.Enabled)
	assert.True(t, settings.Personalization.AdaptiveSorting)
	assert.InDelta(t, 2.5, settings.MCP.RatePerSecond, 1e-9)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("storage.backend", "postgres")
	_ = store.Set("recommendation.limit", -4)
	_ = store.Set("mcp.rate_per_second", "fast")

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Storage.Backend, settings.Storage.Backend)
	assert.Equal(t, defaults.Recommendation.Limit, settings.Recommendation.Limit)
	assert.Equal(t, defaults.MCP.RatePerSecond, settings.MCP.RatePerSecond)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.UserID = "shopper-1"
	settings.Storage.Backend = domain.StorageMemory
	settings.Recommendation.SimilarLimit = 3
	settings.Personalization.AdaptiveSorting = false

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "shopper-1", got.UserID)
	assert.Equal(t, domain.StorageMemory, got.Storage.Backend)
	assert.Equal(t, 3, got.Recommendation.SimilarLimit)
	assert.False(t, got.Personalization.AdaptiveSorting)
	assert.True(t, got.Personalization.Enabled)
}

func TestSettingsService_SetStorageBackend(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetStorageBackend(domain.StorageBadger))
	assert.Equal(t, "badger", store.GetString("storage.backend"))

	err := service.SetStorageBackend("postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage backend")
	assert.Equal(t, "badger", store.GetString("storage.backend"))
}

func TestSettingsService_SetCatalogPath(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetCatalogPath("/data/catalog.json"))
	assert.Equal(t, "/data/catalog.json", store.GetString("catalog.path"))

	require.NoError(t, service.SetCatalogPath(""))
	assert.Empty(t, store.GetString("catalog.path"))
}

func TestSettingsService_EnsureUserID(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	first, err := service.EnsureUserID()
	require.NoError(t, err)
	assert.Len(t, first, 36)

	second, err := service.EnsureUserID()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, first, store.GetString("user.id"))
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
