package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() map[string][]string {
	return map[string][]string{
		"dress": {"gown", "frock"},
		"bag":   {"handbag", "tote"},
	}
}

func TestNewSynonymStore_NoIO(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not-created")

	store, err := NewSynonymStore(dir, testDefaults())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, SynonymsFile), store.Path())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestSynonymStore_WritesDefaultsOnFirstUse(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSynonymStore(dir, testDefaults())
	require.NoError(t, err)

	table, err := store.Synonyms()
	require.NoError(t, err)
	assert.Equal(t, testDefaults(), table)

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[synonyms]")
	assert.Contains(t, string(content), "# Query synonyms")
}

func TestSynonymStore_ReadsUserEdits(t *testing.T) {
	dir := t.TempDir()
	content := `
[synonyms]
Coat = [" Parka ", "overcoat", ""]
"" = ["ignored"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, SynonymsFile), []byte(content), 0600))

	store, err := NewSynonymStore(dir, testDefaults())
	require.NoError(t, err)

	table, err := store.Synonyms()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"coat": {"parka", "overcoat"}}, table)
}

func TestSynonymStore_CacheAndReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSynonymStore(dir, testDefaults())
	require.NoError(t, err)

	first, err := store.Synonyms()
	require.NoError(t, err)
	first["dress"][0] = "mutated"

	require.NoError(t, os.WriteFile(store.Path(), []byte("[synonyms]\nshoes = [\"boots\"]\n"), 0600))

	cached, err := store.Synonyms()
	require.NoError(t, err)
	assert.Equal(t, []string{"gown", "frock"}, cached["dress"])

	store.Reload()
	fresh, err := store.Synonyms()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"shoes": {"boots"}}, fresh)
}

func TestSynonymStore_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SynonymsFile), []byte("[[[ nope"), 0600))

	store, err := NewSynonymStore(dir, testDefaults())
	require.NoError(t, err)

	_, err = store.Synonyms()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestSynonymStore_FallsBackWhenDirUnusable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store, err := NewSynonymStore(filepath.Join(blocker, "sub"), testDefaults())
	require.NoError(t, err)

	table, err := store.Synonyms()
	require.NoError(t, err)
	assert.Equal(t, testDefaults(), table)
}
