package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

func TestProfileShow_NewShopper(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "profile")

	require.NoError(t, err)
	assert.Contains(t, out, "Shopper "+testUser)
	assert.Contains(t, out, "Personalization: on")
	assert.Contains(t, out, "Nothing recorded yet.")
}

func TestProfileShow_WithActivity(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.personalization.TrackInteraction(testUser, domain.Interaction{
		Type: domain.InteractionPurchase, ProductID: "3",
	}))
	require.NoError(t, env.personalization.TrackInteraction(testUser, domain.Interaction{
		Type: domain.InteractionWishlist, ProductID: "4",
	}))

	out, err := execute(t, "profile", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Purchases: 1")
	assert.Contains(t, out, "Wishlist: 4")
	assert.Contains(t, out, "[Learned weights]")
	assert.Contains(t, out, "Categories: (none)")
}

func TestProfileShow_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "profile", "--json", "--user", "guest")
	require.NoError(t, err)

	var snapshot domain.ProfileSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snapshot))
	assert.Equal(t, "guest", snapshot.UserID)
}

func TestProfileReset(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.personalization.TrackInteraction(testUser, domain.Interaction{
		Type: domain.InteractionView, ProductID: "1",
	}))
	require.NoError(t, env.sync.Persist(context.Background()))

	out, err := execute(t, "profile", "reset", "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, "Profile for "+testUser+" reset.")
	_, ok := env.recommendations.UserBehavior(testUser)
	assert.False(t, ok)
	_, err = env.profiles.Get(context.Background(), testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileReset_Confirmation(t *testing.T) {
	original := stdinIsTerminal
	t.Cleanup(func() { stdinIsTerminal = original })

	t.Run("refuses without a terminal", func(t *testing.T) {
		setupTestServices(t)
		stdinIsTerminal = func() bool { return false }

		_, err := execute(t, "profile", "reset")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "--yes")
	})

	t.Run("declined", func(t *testing.T) {
		env := setupTestServices(t)
		stdinIsTerminal = func() bool { return true }
		require.NoError(t, env.personalization.TrackInteraction(testUser, domain.Interaction{
			Type: domain.InteractionView, ProductID: "1",
		}))
		rootCmd.SetIn(strings.NewReader("n\n"))
		t.Cleanup(func() { rootCmd.SetIn(nil) })

		out, err := execute(t, "profile", "reset")

		require.NoError(t, err)
		assert.Contains(t, out, "Cancelled.")
		_, ok := env.recommendations.UserBehavior(testUser)
		assert.True(t, ok)
	})
}

func TestProfileWeights(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "profile", "weights",
		"--category", "women=0.9",
		"--price-min", "100", "--price-max", "400")
	require.NoError(t, err)

	behavior, ok := env.recommendations.UserBehavior(testUser)
	require.True(t, ok)
	assert.InDelta(t, 0.9, behavior.CategoryPreferences["women"], 1e-9)
	assert.InDelta(t, 100.0, behavior.PriceRange.Min, 1e-9)
	assert.InDelta(t, 400.0, behavior.PriceRange.Max, 1e-9)
}

func TestParseWeights(t *testing.T) {
	weights, err := parseWeights("brand", map[string]string{"Luxury Brand": "0.8"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Luxury Brand": 0.8}, weights)

	_, err = parseWeights("brand", map[string]string{"Luxury Brand": "lots"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	weights, err = parseWeights("brand", nil)
	require.NoError(t, err)
	assert.Nil(t, weights)
}

func TestProfilePrefs(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "profile", "prefs",
		"--favorite-category", "women,accessories",
		"--price-max", "500",
		"--adaptive-sorting=false")

	require.NoError(t, err)
	assert.Contains(t, out, "Preferences updated for "+testUser)
	prefs := env.personalization.Preferences(testUser)
	assert.Equal(t, []string{"women", "accessories"}, prefs.FavoriteCategories)
	assert.InDelta(t, 500.0, prefs.PreferredPriceRange.Max, 1e-9)
	assert.False(t, prefs.AdaptiveSorting)
	assert.True(t, prefs.PersonalizationEnabled, "unset flags keep their values")
}

func TestProfilePrefs_InvalidPriceRange(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "profile", "prefs", "--price-min", "600", "--price-max", "100")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormatWeights(t *testing.T) {
	assert.Equal(t, "(none)", formatWeights(nil))
	assert.Equal(t, "women 0.90, accessories 0.40, men 0.40",
		formatWeights(map[string]float64{"men": 0.4, "women": 0.9, "accessories": 0.4}))
}
