package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStoreWith_CopiesValues(t *testing.T) {
	values := map[string]any{"storage.backend": "badger"}
	store := NewConfigStoreWith(values)

	values["storage.backend"] = "sqlite"

	assert.Equal(t, "badger", store.GetString("storage.backend"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("catalog.path", "/tmp/a.json"))
	require.NoError(t, store.Set("catalog.path", "/tmp/b.json"))

	val, ok := store.Get("catalog.path")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/b.json", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"str":       "value",
		"int":       42,
		"int64":     int64(7),
		"float":     2.5,
		"bool":      true,
		"strings":   []string{"a", "b"},
		"any_slice": []any{"x", 1, "y"},
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("str"), "value"},
		{"string wrong type", store.GetString("int"), ""},
		{"string missing", store.GetString("nope"), ""},
		{"int", store.GetInt("int"), 42},
		{"int from int64", store.GetInt("int64"), 7},
		{"int from float truncates", store.GetInt("float"), 2},
		{"int wrong type", store.GetInt("str"), 0},
		{"float", store.GetFloat("float"), 2.5},
		{"float from int", store.GetFloat("int"), 42.0},
		{"float wrong type", store.GetFloat("bool"), 0.0},
		{"bool", store.GetBool("bool"), true},
		{"bool wrong type", store.GetBool("str"), false},
		{"string slice", store.GetStringSlice("strings"), []string{"a", "b"}},
		{"any slice keeps strings", store.GetStringSlice("any_slice"), []string{"x", "y"}},
		{"slice wrong type", store.GetStringSlice("str"), []string(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_SaveLoadNoOp(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("user.id", "abc")

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, "abc", store.GetString("user.id"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key.%d", i%5), i)
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("key.%d", i%5))
		}(i)
	}
	wg.Wait()

	for i := range 5 {
		_, ok := store.Get(fmt.Sprintf("key.%d", i))
		assert.True(t, ok)
	}
}
