package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

const twoProducts = `[
  {"id": "1", "name": "Silk Midi Dress", "brand": "Fashion Studio", "category": "women",
   "price": 299, "originalPrice": 399, "tags": ["silk"], "rating": 4.8,
   "sizes": [{"name": "S"}], "colors": [{"name": "Black", "hex": "#000000"}], "inStock": true},
  {"id": "2", "name": "Cashmere Sweater", "brand": "Fashion Studio", "category": "women",
   "price": 189, "tags": ["cashmere"], "sizes": [], "colors": [], "inStock": true, "isNew": true}
]`

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoad_Array(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, twoProducts)

	products, err := Load(path)
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Silk Midi Dress", products[0].Name)
	require.NotNil(t, products[0].OriginalPrice)
	assert.InDelta(t, 399.0, *products[0].OriginalPrice, 1e-9)
	assert.InDelta(t, 4.8, products[0].RatingValue(), 1e-9)
	assert.True(t, products[0].HasColor("Black"))
	assert.Nil(t, products[1].Rating)
	assert.True(t, products[1].IsNew)
}

func TestLoad_ObjectWithProducts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, `{"products": [{"id": "a", "name": "Linen Shirt", "price": 59}]}`)

	products, err := Load(path)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Linen Shirt", products[0].Name)
}

func TestLoad_StripsMarkup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, `[{"id": "a", "name": "Linen &amp; Cotton Shirt", "price": 59,
		"description": "<p>Breathable <b>linen</b>.</p><p>Relaxed fit.</p>"}]`)

	products, err := Load(path)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Linen & Cotton Shirt", products[0].Name)
	assert.Equal(t, "Breathable linen. Relaxed fit.", products[0].Description)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"missing id", `[{"name": "No Id"}]`, domain.ErrInvalidInput},
		{"duplicate id", `[{"id": "1"}, {"id": "1"}]`, domain.ErrInvalidInput},
		{"not json", `products: yes`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.json")
			writeCatalog(t, path, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})
}

func TestCatalog_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, twoProducts)
	catalog, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, catalog.Path())

	writeCatalog(t, path, `[{"id": ""}]`)
	require.Error(t, catalog.Reload())

	products, err := catalog.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalog_ProductsReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, twoProducts)
	catalog, err := New(path)
	require.NoError(t, err)

	first, _ := catalog.Products(context.Background())
	first[0].Name = "changed"

	again, _ := catalog.Products(context.Background())
	assert.Equal(t, "Silk Midi Dress", again[0].Name)
}

func TestCatalog_WatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, twoProducts)
	catalog, err := New(path, WithSettle(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var changes atomic.Int32
	done := make(chan error, 1)
	go func() { done <- catalog.Watch(ctx, func() { changes.Add(1) }) }()

	// Keep rewriting until the watcher has registered and picked one up.
	require.Eventually(t, func() bool {
		writeCatalog(t, path, `[{"id": "9", "name": "Linen Shirt"}]`)
		return changes.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	products, err := catalog.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "9", products[0].ID)

	cancel()
	assert.NoError(t, <-done)
}

func TestCatalog_WatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	writeCatalog(t, path, twoProducts)
	catalog, err := New(path, WithSettle(5*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	var changes atomic.Int32
	done := make(chan error, 1)
	go func() { done <- catalog.Watch(ctx, func() { changes.Add(1) }) }()

	for i := 0; i < 5; i++ {
		writeCatalog(t, filepath.Join(dir, "other.json"), "[]")
		time.Sleep(20 * time.Millisecond)
	}

	assert.NoError(t, <-done)
	assert.Zero(t, changes.Load())
}
