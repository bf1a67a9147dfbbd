package services

import (
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
	"github.com/custodia-labs/shopsearch/internal/logger"
)

// Ensure RecommendationEngine implements the interface.
var _ driving.RecommendationService = (*RecommendationEngine)(nil)

// Blend weights for personalized scoring.
const (
	CategoryAffinityWeight = 0.3
	BrandAffinityWeight    = 0.2
	PriceRangeWeight       = 0.2
	TrendWeight            = 0.15
	ContextWeight          = 0.15
)

// Default result sizes.
const (
	DefaultRecommendationLimit = 10
	DefaultSimilarLimit        = 6
)

// RecommendationEngine ranks products for a shopper from their behaviour
// profile, global trends and situational context.
type RecommendationEngine struct {
	mu         sync.Mutex
	behaviors  *behaviorBook
	trends     map[string]float64
	similarity SimilarityStrategy
	contextual *ContextualScorer
	now        func() time.Time
}

// RecommendationOption configures a RecommendationEngine.
type RecommendationOption func(*RecommendationEngine)

// WithTrends sets the global per-product trend scores.
func WithTrends(trends map[string]float64) RecommendationOption {
	return func(e *RecommendationEngine) {
		e.trends = maps.Clone(trends)
	}
}

// WithSimilarityTable answers similar-product lookups from a precomputed
// table first, falling back to content similarity for products it lacks.
func WithSimilarityTable(entries []domain.ProductSimilarity) RecommendationOption {
	return func(e *RecommendationEngine) {
		e.similarity = ChainSimilarity{NewTableSimilarity(entries), ContentSimilarity{}}
	}
}

// WithSimilarityStrategy replaces the similarity strategy.
func WithSimilarityStrategy(s SimilarityStrategy) RecommendationOption {
	return func(e *RecommendationEngine) {
		e.similarity = s
	}
}

// WithContextRules replaces the contextual bonus rules.
func WithContextRules(rules ...ContextRule) RecommendationOption {
	return func(e *RecommendationEngine) {
		e.contextual = NewContextualScorer(rules...)
	}
}

// WithClock sets the time source used for timestamps and context defaults.
func WithClock(now func() time.Time) RecommendationOption {
	return func(e *RecommendationEngine) {
		e.now = now
	}
}

// WithSeedData loads the storefront's demo shopper, similarity table and
// trend scores.
func WithSeedData() RecommendationOption {
	return func(e *RecommendationEngine) {
		WithTrends(SeedTrends())(e)
		WithSimilarityTable(SeedSimilarity())(e)
		e.behaviors.load(SeedBehavior(e.now()))
	}
}

// NewRecommendationEngine creates an engine with no shoppers, no trend
// scores and content-based similarity. Options apply in order.
func NewRecommendationEngine(opts ...RecommendationOption) *RecommendationEngine {
	e := &RecommendationEngine{
		behaviors:  newBehaviorBook(),
		trends:     map[string]float64{},
		similarity: ContentSimilarity{},
		contextual: NewContextualScorer(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UpdateUserBehavior records one interaction, creating the profile on first
// use. Preference weights are not derived from events.
func (e *RecommendationEngine) UpdateUserBehavior(userID string, interaction domain.Interaction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.behaviors.record(userID, interaction, e.now()); err != nil {
		logger.Warn("Rejected %s interaction for %s: %v", interaction.Type, userID, err)
		return err
	}
	logger.Debug("Recorded %s interaction for %s", interaction.Type, userID)
	return nil
}

// PersonalizedRecommendations blends the shopper's affinities with trend and
// context scores. Unknown shoppers get the trending order.
func (e *RecommendationEngine) PersonalizedRecommendations(
	userID string, catalog []domain.Product, rctx domain.RecommendationContext, limit int,
) []domain.Product {
	logger.Section("Recommendations")
	defer logger.Timed("recommendations for %s", userID)()
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	profile, ok := e.behaviors.get(userID)
	if !ok {
		logger.Debug("No profile for %s, using trending fallback", userID)
		return e.trending(catalog, limit)
	}

	rctx = rctx.WithDefaults(e.now())
	logger.Debug("Context: time=%s season=%s occasion=%s", rctx.TimeOfDay, rctx.Season, rctx.Occasion)

	scored := make([]scoredProduct, len(catalog))
	for i := range catalog {
		scored[i] = scoredProduct{product: catalog[i], score: e.personalScore(profile, &catalog[i], rctx)}
	}
	result := topN(scored, limit)

	logger.Info("Recommended %d of %d products for %s", len(result), len(catalog), userID)
	return result
}

// personalScore is the weighted blend for one product.
func (e *RecommendationEngine) personalScore(
	profile *domain.UserBehavior, p *domain.Product, rctx domain.RecommendationContext,
) float64 {
	score := CategoryAffinityWeight * profile.CategoryPreferences[p.Category]
	score += BrandAffinityWeight * profile.BrandPreferences[p.Brand]
	if profile.PriceRange.Contains(p.Price) {
		score += PriceRangeWeight * profile.PriceRange.Frequency
	}
	score += TrendWeight * e.trends[p.ID]
	score += ContextWeight * e.contextual.Score(p, rctx)
	return score
}

func (e *RecommendationEngine) trending(catalog []domain.Product, limit int) []domain.Product {
	scored := make([]scoredProduct, len(catalog))
	for i := range catalog {
		scored[i] = scoredProduct{product: catalog[i], score: e.trends[catalog[i].ID]}
	}
	return topN(scored, limit)
}

// topN stable-sorts by descending score and returns at most n products.
func topN(scored []scoredProduct, n int) []domain.Product {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	n = min(n, len(scored))
	out := make([]domain.Product, n)
	for i := range n {
		out[i] = scored[i].product
	}
	return out
}

// SimilarProducts returns up to limit products like productID. Unknown
// products yield an empty list.
func (e *RecommendationEngine) SimilarProducts(productID string, catalog []domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	e.mu.Lock()
	strategy := e.similarity
	e.mu.Unlock()

	products, ok := strategy.Similar(productID, catalog, limit)
	if !ok {
		logger.Debug("No similarity data for product %s", productID)
		return []domain.Product{}
	}
	logger.Debug("Found %d products similar to %s", len(products), productID)
	return products
}

// UserBehavior returns a copy of the shopper's profile.
func (e *RecommendationEngine) UserBehavior(userID string) (*domain.UserBehavior, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	profile, ok := e.behaviors.get(userID)
	if !ok {
		return nil, false
	}
	return profile.Clone(), true
}

// SetPreferenceWeights overwrites the given weight maps, clamped into [0,1].
func (e *RecommendationEngine) SetPreferenceWeights(userID string, weights domain.PreferenceWeights) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.behaviors.setWeights(userID, weights)
}

// ResetUserBehavior forgets the shopper entirely.
func (e *RecommendationEngine) ResetUserBehavior(userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.behaviors.reset(userID)
	logger.Debug("Reset behaviour for %s", userID)
}

// Behaviors returns copies of every profile, ordered by user ID.
func (e *RecommendationEngine) Behaviors() []*domain.UserBehavior {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.behaviors.all()
}

// LoadBehavior installs a copy of a persisted profile, replacing any
// existing one for the same shopper.
func (e *RecommendationEngine) LoadBehavior(profile *domain.UserBehavior) {
	if profile == nil || profile.UserID == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.behaviors.load(profile)
}

// SeedTrends returns the storefront's demo trend scores.
func SeedTrends() map[string]float64 {
	return map[string]float64{
		"1": 0.95,
		"2": 0.88,
		"3": 0.76,
		"4": 0.82,
		"5": 0.71,
		"6": 0.69,
	}
}

// SeedSimilarity returns the storefront's demo neighbour table.
func SeedSimilarity() []domain.ProductSimilarity {
	return []domain.ProductSimilarity{{
		ProductID: "1",
		SimilarProducts: []domain.SimilarProduct{
			{ProductID: "2", Score: 0.85},
			{ProductID: "4", Score: 0.72},
			{ProductID: "3", Score: 0.68},
		},
	}}
}

// SeedUserID is the demo shopper loaded by WithSeedData.
const SeedUserID = "user1"

// SeedBehavior returns the demo shopper's profile with timestamps relative to now.
func SeedBehavior(now time.Time) *domain.UserBehavior {
	b := domain.NewUserBehavior(SeedUserID)
	b.ProductViews = []domain.ProductView{
		{ProductID: "1", Timestamp: now.Add(-24 * time.Hour), Duration: 45 * time.Second},
		{ProductID: "2", Timestamp: now.Add(-12 * time.Hour), Duration: 30 * time.Second},
	}
	b.Purchases = []domain.Purchase{
		{ProductID: "1", Timestamp: now.Add(-7 * 24 * time.Hour), Rating: domain.Float(5)},
	}
	b.WishlistItems = []string{"2", "3"}
	b.SearchQueries = []domain.SearchRecord{
		{Query: "silk dress", Timestamp: now.Add(-2 * time.Hour), ResultsClicked: []string{"1"}},
	}
	b.CategoryPreferences = map[string]float64{"women": 0.8, "accessories": 0.2}
	b.BrandPreferences = map[string]float64{"Fashion Studio": 0.9}
	b.SizePreferences = map[string]float64{"M": 0.6, "L": 0.4}
	b.ColorPreferences = map[string]float64{"black": 0.4, "navy": 0.3, "white": 0.3}
	b.PriceRange = domain.PriceAffinity{Min: 100, Max: 500, Frequency: 0.7}
	return b
}
