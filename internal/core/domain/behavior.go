package domain

import (
	"maps"
	"slices"
	"time"
)

// Default price affinity for a shopper with no history.
const (
	DefaultPriceMin       = 0
	DefaultPriceMax       = 1000
	DefaultPriceFrequency = 0.5
)

// ProductView records one product detail view.
type ProductView struct {
	ProductID string        `json:"productId"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
}

// Purchase records one purchase with an optional rating.
type Purchase struct {
	ProductID string    `json:"productId"`
	Timestamp time.Time `json:"timestamp"`
	Rating    *float64  `json:"rating,omitempty"`
}

// SearchRecord records one search and the results the shopper opened.
type SearchRecord struct {
	Query          string    `json:"query"`
	Timestamp      time.Time `json:"timestamp"`
	ResultsClicked []string  `json:"resultsClicked"`
}

// PriceAffinity is the shopper's usual price band and how strongly
// purchases cluster in it (Frequency in [0,1]).
type PriceAffinity struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Frequency float64 `json:"frequency"`
}

// Contains reports whether price lies within the band.
func (a PriceAffinity) Contains(price float64) bool {
	return price >= a.Min && price <= a.Max
}

// UserBehavior is one shopper's interaction history and preference weights.
type UserBehavior struct {
	UserID              string             `json:"userId"`
	ProductViews        []ProductView      `json:"productViews"`
	Purchases           []Purchase         `json:"purchases"`
	WishlistItems       []string           `json:"wishlistItems"`
	SearchQueries       []SearchRecord     `json:"searchQueries"`
	CategoryPreferences map[string]float64 `json:"categoryPreferences"`
	BrandPreferences    map[string]float64 `json:"brandPreferences"`
	SizePreferences     map[string]float64 `json:"sizePreferences"`
	ColorPreferences    map[string]float64 `json:"colorPreferences"`
	PriceRange          PriceAffinity      `json:"priceRange"`
}

// NewUserBehavior returns the empty profile given to an unseen shopper.
func NewUserBehavior(userID string) *UserBehavior {
	return &UserBehavior{
		UserID:              userID,
		ProductViews:        []ProductView{},
		Purchases:           []Purchase{},
		WishlistItems:       []string{},
		SearchQueries:       []SearchRecord{},
		CategoryPreferences: map[string]float64{},
		BrandPreferences:    map[string]float64{},
		SizePreferences:     map[string]float64{},
		ColorPreferences:    map[string]float64{},
		PriceRange: PriceAffinity{
			Min:       DefaultPriceMin,
			Max:       DefaultPriceMax,
			Frequency: DefaultPriceFrequency,
		},
	}
}

// InWishlist reports whether the product is already wishlisted.
func (b *UserBehavior) InWishlist(productID string) bool {
	return slices.Contains(b.WishlistItems, productID)
}

// Clone returns a deep copy, so callers never alias engine state.
func (b *UserBehavior) Clone() *UserBehavior {
	if b == nil {
		return nil
	}
	c := *b
	c.ProductViews = slices.Clone(b.ProductViews)
	c.Purchases = make([]Purchase, len(b.Purchases))
	for i, p := range b.Purchases {
		c.Purchases[i] = p
		if p.Rating != nil {
			c.Purchases[i].Rating = Float(*p.Rating)
		}
	}
	c.WishlistItems = slices.Clone(b.WishlistItems)
	c.SearchQueries = make([]SearchRecord, len(b.SearchQueries))
	for i, q := range b.SearchQueries {
		c.SearchQueries[i] = q
		c.SearchQueries[i].ResultsClicked = slices.Clone(q.ResultsClicked)
	}
	c.CategoryPreferences = maps.Clone(b.CategoryPreferences)
	c.BrandPreferences = maps.Clone(b.BrandPreferences)
	c.SizePreferences = maps.Clone(b.SizePreferences)
	c.ColorPreferences = maps.Clone(b.ColorPreferences)
	return &c
}

// InteractionType identifies a shopper event.
type InteractionType string

// Interaction types.
const (
	InteractionView     InteractionType = "view"
	InteractionPurchase InteractionType = "purchase"
	InteractionWishlist InteractionType = "wishlist"
	InteractionSearch   InteractionType = "search"
)

// IsValid returns true if the interaction type is recognised.
func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionView, InteractionPurchase, InteractionWishlist, InteractionSearch:
		return true
	default:
		return false
	}
}

// Interaction is one event reported by the UI. Which fields matter depends
// on Type: view uses ProductID and Duration, purchase uses ProductID and
// Rating, wishlist uses ProductID, search uses Query and ResultsClicked.
type Interaction struct {
	Type           InteractionType `json:"type"`
	ProductID      string          `json:"productId,omitempty"`
	Duration       time.Duration   `json:"duration,omitempty"`
	Rating         *float64        `json:"rating,omitempty"`
	Query          string          `json:"query,omitempty"`
	ResultsClicked []string        `json:"resultsClicked,omitempty"`
}

// PreferenceWeights sets preference weights on a profile. Nil maps and a nil
// PriceRange leave the current values untouched.
type PreferenceWeights struct {
	Categories map[string]float64 `json:"categories,omitempty"`
	Brands     map[string]float64 `json:"brands,omitempty"`
	Sizes      map[string]float64 `json:"sizes,omitempty"`
	Colors     map[string]float64 `json:"colors,omitempty"`
	PriceRange *PriceAffinity     `json:"priceRange,omitempty"`
}
