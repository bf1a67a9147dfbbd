package domain

import (
	"slices"
	"time"
)

// ProfileSchemaVersion is the current version of persisted profile blobs.
const ProfileSchemaVersion = 1

// UserPreferences are the explicit choices a shopper made in settings.
// They drive adaptive sorting and the personalization toggle.
type UserPreferences struct {
	UserID                 string     `json:"userId"`
	FavoriteCategories     []string   `json:"favoriteCategories"`
	FavoriteBrands         []string   `json:"favoriteBrands"`
	PreferredPriceRange    PriceRange `json:"preferredPriceRange"`
	PreferredSizes         []string   `json:"preferredSizes"`
	PreferredColors        []string   `json:"preferredColors"`
	AdaptiveSorting        bool       `json:"adaptiveSorting"`
	PersonalizationEnabled bool       `json:"personalizationEnabled"`
}

// DefaultUserPreferences returns the preferences of a new shopper.
func DefaultUserPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:                 userID,
		FavoriteCategories:     []string{},
		FavoriteBrands:         []string{},
		PreferredPriceRange:    PriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax},
		PreferredSizes:         []string{},
		PreferredColors:        []string{},
		AdaptiveSorting:        true,
		PersonalizationEnabled: true,
	}
}

// IsFavoriteCategory reports whether category is a favourite.
func (p UserPreferences) IsFavoriteCategory(category string) bool {
	return slices.Contains(p.FavoriteCategories, category)
}

// IsFavoriteBrand reports whether brand is a favourite.
func (p UserPreferences) IsFavoriteBrand(brand string) bool {
	return slices.Contains(p.FavoriteBrands, brand)
}

// ProfileSnapshot is everything persisted for one shopper.
// Behavior is nil for a shopper who never interacted.
type ProfileSnapshot struct {
	UserID      string          `json:"userId"`
	Behavior    *UserBehavior   `json:"behavior,omitempty"`
	Preferences UserPreferences `json:"preferences"`
	SavedAt     time.Time       `json:"savedAt"`
}
