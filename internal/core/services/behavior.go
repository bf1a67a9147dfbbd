package services

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// behaviorBook holds every shopper's behaviour profile. It is not safe for
// concurrent use; RecommendationEngine guards it.
type behaviorBook struct {
	profiles map[string]*domain.UserBehavior
}

func newBehaviorBook() *behaviorBook {
	return &behaviorBook{profiles: make(map[string]*domain.UserBehavior)}
}

// ensure returns the shopper's profile, creating the default one if needed.
func (b *behaviorBook) ensure(userID string) *domain.UserBehavior {
	profile, ok := b.profiles[userID]
	if !ok {
		profile = domain.NewUserBehavior(userID)
		b.profiles[userID] = profile
	}
	return profile
}

func (b *behaviorBook) get(userID string) (*domain.UserBehavior, bool) {
	profile, ok := b.profiles[userID]
	return profile, ok
}

// record appends an interaction to the shopper's profile. An unseen shopper
// gets the default profile even when the interaction is rejected.
func (b *behaviorBook) record(userID string, in domain.Interaction, at time.Time) error {
	profile := b.ensure(userID)
	if err := validateInteraction(in); err != nil {
		return err
	}

	switch in.Type {
	case domain.InteractionView:
		profile.ProductViews = append(profile.ProductViews, domain.ProductView{
			ProductID: in.ProductID,
			Timestamp: at,
			Duration:  in.Duration,
		})
	case domain.InteractionPurchase:
		purchase := domain.Purchase{ProductID: in.ProductID, Timestamp: at}
		if in.Rating != nil {
			purchase.Rating = domain.Float(*in.Rating)
		}
		profile.Purchases = append(profile.Purchases, purchase)
	case domain.InteractionWishlist:
		if !profile.InWishlist(in.ProductID) {
			profile.WishlistItems = append(profile.WishlistItems, in.ProductID)
		}
	case domain.InteractionSearch:
		profile.SearchQueries = append(profile.SearchQueries, domain.SearchRecord{
			Query:          in.Query,
			Timestamp:      at,
			ResultsClicked: slices.Clone(in.ResultsClicked),
		})
	}
	return nil
}

func validateInteraction(in domain.Interaction) error {
	if !in.Type.IsValid() {
		return fmt.Errorf("%w: unknown interaction type %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Type == domain.InteractionSearch {
		return nil
	}
	if in.ProductID == "" {
		return fmt.Errorf("%w: %s interaction needs a product id", domain.ErrInvalidInput, in.Type)
	}
	return nil
}

// setWeights overwrites the weight maps present in w, clamping every value
// into [0,1].
func (b *behaviorBook) setWeights(userID string, w domain.PreferenceWeights) {
	profile := b.ensure(userID)
	if w.Categories != nil {
		profile.CategoryPreferences = clampWeights(w.Categories)
	}
	if w.Brands != nil {
		profile.BrandPreferences = clampWeights(w.Brands)
	}
	if w.Sizes != nil {
		profile.SizePreferences = clampWeights(w.Sizes)
	}
	if w.Colors != nil {
		profile.ColorPreferences = clampWeights(w.Colors)
	}
	if w.PriceRange != nil {
		profile.PriceRange = domain.PriceAffinity{
			Min:       w.PriceRange.Min,
			Max:       w.PriceRange.Max,
			Frequency: clamp01(w.PriceRange.Frequency),
		}
	}
}

func (b *behaviorBook) reset(userID string) {
	delete(b.profiles, userID)
}

// load replaces a profile with a copy of p.
func (b *behaviorBook) load(p *domain.UserBehavior) {
	c := p.Clone()
	fillMissing(c)
	b.profiles[c.UserID] = c
}

// all returns copies of every profile, ordered by user ID.
func (b *behaviorBook) all() []*domain.UserBehavior {
	ids := slices.Sorted(maps.Keys(b.profiles))
	out := make([]*domain.UserBehavior, len(ids))
	for i, id := range ids {
		out[i] = b.profiles[id].Clone()
	}
	return out
}

// fillMissing replaces nil collections so decoded profiles behave like new ones.
func fillMissing(p *domain.UserBehavior) {
	if p.ProductViews == nil {
		p.ProductViews = []domain.ProductView{}
	}
	if p.Purchases == nil {
		p.Purchases = []domain.Purchase{}
	}
	if p.WishlistItems == nil {
		p.WishlistItems = []string{}
	}
	if p.SearchQueries == nil {
		p.SearchQueries = []domain.SearchRecord{}
	}
	if p.CategoryPreferences == nil {
		p.CategoryPreferences = map[string]float64{}
	}
	if p.BrandPreferences == nil {
		p.BrandPreferences = map[string]float64{}
	}
	if p.SizePreferences == nil {
		p.SizePreferences = map[string]float64{}
	}
	if p.ColorPreferences == nil {
		p.ColorPreferences = map[string]float64{}
	}
}

func clampWeights(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = clamp01(v)
	}
	return out
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
