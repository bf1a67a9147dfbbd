package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

func TestTrackCmd_View(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "track", "view", "3", "--duration", "45s")

	require.NoError(t, err)
	assert.Contains(t, out, "Recorded view for "+testUser)

	behavior, ok := env.recommendations.UserBehavior(testUser)
	require.True(t, ok)
	require.Len(t, behavior.ProductViews, 1)
	assert.Equal(t, "3", behavior.ProductViews[0].ProductID)
	assert.Equal(t, 45*time.Second, behavior.ProductViews[0].Duration)

	_, err = env.profiles.Get(context.Background(), testUser)
	assert.NoError(t, err, "the profile is saved after tracking")
}

func TestTrackCmd_PurchaseAndSearch(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "track", "purchase", "1", "--rating", "5")
	require.NoError(t, err)
	_, err = execute(t, "track", "search", "silk dress", "--clicked", "1,3")
	require.NoError(t, err)

	behavior, ok := env.recommendations.UserBehavior(testUser)
	require.True(t, ok)
	require.Len(t, behavior.Purchases, 1)
	require.NotNil(t, behavior.Purchases[0].Rating)
	assert.InDelta(t, 5.0, *behavior.Purchases[0].Rating, 1e-9)
	require.Len(t, behavior.SearchQueries, 1)
	assert.Equal(t, []string{"1", "3"}, behavior.SearchQueries[0].ResultsClicked)
}

func TestTrackCmd_UnknownType(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "track", "like", "1")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestTrackCmd_PersonalizationOff(t *testing.T) {
	env := setupTestServices(t)
	env.personalization.SetEnabled(testUser, false)

	out, err := execute(t, "track", "wishlist", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Personalization is off; nothing recorded.")
	_, ok := env.recommendations.UserBehavior(testUser)
	assert.False(t, ok)
}
