package services

import (
	"slices"
	"sort"
	"sync"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
	"github.com/custodia-labs/shopsearch/internal/logger"
)

// Ensure PersonalizationEngine implements the interface.
var _ driving.PersonalizationService = (*PersonalizationEngine)(nil)

// Adaptive sort bonuses.
const (
	FavoriteCategoryBonus = 0.3
	FavoriteBrandBonus    = 0.2
	PreferredPriceBonus   = 0.2
)

// PersonalizationEngine layers explicit shopper preferences and the
// personalization toggle over a RecommendationService.
type PersonalizationEngine struct {
	mu              sync.Mutex
	recommendations driving.RecommendationService
	preferences     map[string]domain.UserPreferences
	defaults        func(userID string) domain.UserPreferences
}

// PersonalizationOption configures a PersonalizationEngine.
type PersonalizationOption func(*PersonalizationEngine)

// WithDefaultToggles makes shoppers without stored preferences start with
// the given toggles.
func WithDefaultToggles(enabled, adaptiveSorting bool) PersonalizationOption {
	return func(p *PersonalizationEngine) {
		p.defaults = func(userID string) domain.UserPreferences {
			prefs := domain.DefaultUserPreferences(userID)
			prefs.PersonalizationEnabled = enabled
			prefs.AdaptiveSorting = adaptiveSorting
			return prefs
		}
	}
}

// NewPersonalizationEngine creates a personalization layer over recs.
func NewPersonalizationEngine(recs driving.RecommendationService, opts ...PersonalizationOption) *PersonalizationEngine {
	p := &PersonalizationEngine{
		recommendations: recs,
		preferences:     make(map[string]domain.UserPreferences),
		defaults:        domain.DefaultUserPreferences,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preferences returns the shopper's preferences, or defaults.
func (p *PersonalizationEngine) Preferences(userID string) domain.UserPreferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clonePreferences(p.lookup(userID))
}

func (p *PersonalizationEngine) lookup(userID string) domain.UserPreferences {
	if prefs, ok := p.preferences[userID]; ok {
		return prefs
	}
	return p.defaults(userID)
}

// UpdatePreferences replaces the shopper's preferences.
func (p *PersonalizationEngine) UpdatePreferences(prefs domain.UserPreferences) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.preferences[prefs.UserID] = clonePreferences(prefs)
}

// SetEnabled turns personalization on or off.
func (p *PersonalizationEngine) SetEnabled(userID string, enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prefs := p.lookup(userID)
	prefs.PersonalizationEnabled = enabled
	p.preferences[userID] = prefs
	logger.Debug("Personalization for %s enabled=%t", userID, enabled)
}

func (p *PersonalizationEngine) enabled(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lookup(userID).PersonalizationEnabled
}

// TrackInteraction records an interaction. It returns
// domain.ErrPersonalizationDisabled without recording when the shopper
// turned personalization off.
func (p *PersonalizationEngine) TrackInteraction(userID string, interaction domain.Interaction) error {
	if !p.enabled(userID) {
		return domain.ErrPersonalizationDisabled
	}
	return p.recommendations.UpdateUserBehavior(userID, interaction)
}

// Recommendations returns personalized picks, or the first limit catalog
// products when personalization is off.
func (p *PersonalizationEngine) Recommendations(
	userID string, catalog []domain.Product, rctx domain.RecommendationContext, limit int,
) []domain.Product {
	if !p.enabled(userID) {
		return head(catalog, limit, DefaultRecommendationLimit)
	}
	return p.recommendations.PersonalizedRecommendations(userID, catalog, rctx, limit)
}

// SimilarProducts returns similar products, or the first limit catalog
// products when personalization is off.
func (p *PersonalizationEngine) SimilarProducts(
	userID, productID string, catalog []domain.Product, limit int,
) []domain.Product {
	if !p.enabled(userID) {
		return head(catalog, limit, DefaultSimilarLimit)
	}
	return p.recommendations.SimilarProducts(productID, catalog, limit)
}

// SortOrder floats favourite categories, favourite brands and the preferred
// price band to the top. It returns the catalog order when personalization
// or adaptive sorting is off. The catalog slice is never modified.
func (p *PersonalizationEngine) SortOrder(userID string, catalog []domain.Product) []domain.Product {
	prefs := p.Preferences(userID)
	if !prefs.PersonalizationEnabled || !prefs.AdaptiveSorting {
		return slices.Clone(catalog)
	}

	scored := make([]scoredProduct, len(catalog))
	for i := range catalog {
		scored[i] = scoredProduct{product: catalog[i], score: adaptiveScore(prefs, &catalog[i])}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]domain.Product, len(scored))
	for i, sp := range scored {
		out[i] = sp.product
	}
	return out
}

func adaptiveScore(prefs domain.UserPreferences, product *domain.Product) float64 {
	var score float64
	if prefs.IsFavoriteCategory(product.Category) {
		score += FavoriteCategoryBonus
	}
	if prefs.IsFavoriteBrand(product.Brand) {
		score += FavoriteBrandBonus
	}
	if prefs.PreferredPriceRange.Contains(product.Price) {
		score += PreferredPriceBonus
	}
	return score
}

// Reset restores default preferences and forgets recorded behaviour.
func (p *PersonalizationEngine) Reset(userID string) {
	p.mu.Lock()
	delete(p.preferences, userID)
	p.mu.Unlock()
	p.recommendations.ResetUserBehavior(userID)
	logger.Info("Reset personalization for %s", userID)
}

// AllPreferences returns copies of every stored preference set, keyed by user.
func (p *PersonalizationEngine) AllPreferences() map[string]domain.UserPreferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]domain.UserPreferences, len(p.preferences))
	for id, prefs := range p.preferences {
		out[id] = clonePreferences(prefs)
	}
	return out
}

func head(catalog []domain.Product, limit, fallback int) []domain.Product {
	if limit <= 0 {
		limit = fallback
	}
	return slices.Clone(catalog[:min(limit, len(catalog))])
}

func clonePreferences(prefs domain.UserPreferences) domain.UserPreferences {
	prefs.FavoriteCategories = slices.Clone(prefs.FavoriteCategories)
	prefs.FavoriteBrands = slices.Clone(prefs.FavoriteBrands)
	prefs.PreferredSizes = slices.Clone(prefs.PreferredSizes)
	prefs.PreferredColors = slices.Clone(prefs.PreferredColors)
	return prefs
}
