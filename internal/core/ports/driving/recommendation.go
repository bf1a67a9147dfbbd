package driving

import "github.com/custodia-labs/shopsearch/internal/core/domain"

// RecommendationService ranks products for a shopper and tracks their behaviour.
type RecommendationService interface {
	// UpdateUserBehavior records one interaction, creating the profile if needed.
	UpdateUserBehavior(userID string, interaction domain.Interaction) error

	// PersonalizedRecommendations returns up to limit products ranked for userID.
	PersonalizedRecommendations(
		userID string, catalog []domain.Product, rctx domain.RecommendationContext, limit int,
	) []domain.Product

	// SimilarProducts returns up to limit products similar to productID.
	SimilarProducts(productID string, catalog []domain.Product, limit int) []domain.Product

	// UserBehavior returns a copy of the shopper's profile, if one exists.
	UserBehavior(userID string) (*domain.UserBehavior, bool)

	// SetPreferenceWeights overwrites preference weights, clamped into [0,1].
	SetPreferenceWeights(userID string, weights domain.PreferenceWeights)

	// ResetUserBehavior forgets everything recorded for userID.
	ResetUserBehavior(userID string)
}

// PersonalizationService applies a shopper's explicit preferences and the
// personalization toggle on top of the recommendation engine.
type PersonalizationService interface {
	// Preferences returns the shopper's preferences, or defaults.
	Preferences(userID string) domain.UserPreferences

	// UpdatePreferences replaces the shopper's preferences.
	UpdatePreferences(prefs domain.UserPreferences)

	// SetEnabled turns personalization on or off for the shopper.
	SetEnabled(userID string, enabled bool)

	// TrackInteraction records an interaction unless personalization is off.
	TrackInteraction(userID string, interaction domain.Interaction) error

	// Recommendations returns personalized picks, or the first limit
	// catalog products when personalization is off.
	Recommendations(
		userID string, catalog []domain.Product, rctx domain.RecommendationContext, limit int,
	) []domain.Product

	// SimilarProducts returns similar products, or the first limit catalog
	// products when personalization is off.
	SimilarProducts(userID, productID string, catalog []domain.Product, limit int) []domain.Product

	// SortOrder reorders a listing by the shopper's explicit preferences.
	SortOrder(userID string, catalog []domain.Product) []domain.Product

	// Reset restores default preferences and forgets recorded behaviour.
	Reset(userID string)
}
