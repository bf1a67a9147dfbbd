package services

import (
	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// MaxContextualScore caps the summed contextual bonuses.
const MaxContextualScore = 1.0

// ContextField names the part of a RecommendationContext a rule reacts to.
type ContextField string

// Context fields.
const (
	FieldTimeOfDay ContextField = "time_of_day"
	FieldSeason    ContextField = "season"
	FieldOccasion  ContextField = "occasion"
	FieldWeather   ContextField = "weather"
)

// ContextRule awards a bonus when a product fits the shopper's situation.
// Rules are hand-tuned heuristics, not a learned model.
type ContextRule interface {
	// Field is the context field the rule inspects.
	Field() ContextField

	// Bonus returns the rule's contribution for product under rctx, or 0.
	Bonus(product *domain.Product, rctx domain.RecommendationContext) float64
}

// TagRule fires when a context field has a given value and the product
// carries Tag (and, when Category is set, belongs to it).
type TagRule struct {
	On       ContextField
	Value    string
	Category string
	Tag      string
	Points   float64
}

// Field returns the inspected context field.
func (r TagRule) Field() ContextField {
	return r.On
}

// Bonus returns Points when the rule matches.
func (r TagRule) Bonus(product *domain.Product, rctx domain.RecommendationContext) float64 {
	if contextValue(rctx, r.On) != r.Value {
		return 0
	}
	if r.Category != "" && product.Category != r.Category {
		return 0
	}
	if !product.HasTag(r.Tag) {
		return 0
	}
	return r.Points
}

func contextValue(rctx domain.RecommendationContext, field ContextField) string {
	switch field {
	case FieldTimeOfDay:
		return string(rctx.TimeOfDay)
	case FieldSeason:
		return string(rctx.Season)
	case FieldOccasion:
		return string(rctx.Occasion)
	case FieldWeather:
		return string(rctx.Weather)
	default:
		return ""
	}
}

// DefaultContextRules returns the storefront's situational bonuses.
func DefaultContextRules() []ContextRule {
	return []ContextRule{
		TagRule{On: FieldTimeOfDay, Value: string(domain.Evening), Category: "women", Tag: "elegant", Points: 0.3},
		TagRule{On: FieldSeason, Value: string(domain.Winter), Tag: "warm", Points: 0.4},
		TagRule{On: FieldOccasion, Value: string(domain.OccasionFormal), Tag: "elegant", Points: 0.5},
	}
}

// ContextualScorer sums rule bonuses, capped at MaxContextualScore.
type ContextualScorer struct {
	rules []ContextRule
}

// NewContextualScorer creates a scorer. No rules means DefaultContextRules.
func NewContextualScorer(rules ...ContextRule) *ContextualScorer {
	if len(rules) == 0 {
		rules = DefaultContextRules()
	}
	return &ContextualScorer{rules: rules}
}

// Score returns the product's contextual fit in [0, MaxContextualScore].
func (s *ContextualScorer) Score(product *domain.Product, rctx domain.RecommendationContext) float64 {
	var score float64
	for _, rule := range s.rules {
		score += rule.Bonus(product, rctx)
	}
	return min(max(score, 0), MaxContextualScore)
}
