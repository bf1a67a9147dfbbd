package services

import (
	"strings"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// Relevance weights. A token earns each weight once per field it occurs in.
const (
	NameMatchWeight        = 10.0
	DescriptionMatchWeight = 5.0
	BrandMatchWeight       = 8.0
	CategoryMatchWeight    = 6.0
	TagMatchWeight         = 4.0
	SynonymMatchWeight     = 3.0

	// FuzzyMatchWeight scales the best word similarity above FuzzyThreshold.
	FuzzyMatchWeight = 2.0
	FuzzyThreshold   = 0.7
)

// DefaultSynonyms maps a query word to words that mean the same garment.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"dress": {"gown", "frock", "outfit"},
		"shirt": {"blouse", "top", "tee"},
		"pants": {"trousers", "jeans", "slacks"},
		"shoes": {"footwear", "sneakers", "boots"},
		"bag":   {"handbag", "purse", "tote"},
	}
}

// Tokenize lowercases a query and splits it on whitespace.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// RelevanceScorer scores a product against query tokens.
// Scores only rank products within one query; 0 means excluded.
type RelevanceScorer struct {
	synonyms map[string][]string
}

// NewRelevanceScorer creates a scorer. A nil table uses DefaultSynonyms.
func NewRelevanceScorer(synonyms map[string][]string) *RelevanceScorer {
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	return &RelevanceScorer{synonyms: synonyms}
}

// Score sums, over every token, the exact-substring, fuzzy and synonym
// contributions for the product. Tokens must already be lowercase.
func (s *RelevanceScorer) Score(product *domain.Product, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}

	name := strings.ToLower(product.Name)
	description := strings.ToLower(product.Description)
	brand := strings.ToLower(product.Brand)
	category := strings.ToLower(product.Category)
	tags := make([]string, len(product.Tags))
	for i, tag := range product.Tags {
		tags[i] = strings.ToLower(tag)
	}

	fields := make([]string, 0, 4+len(tags))
	fields = append(fields, name, description, brand, category)
	fields = append(fields, tags...)
	text := strings.Join(fields, " ")
	words := strings.Fields(text)

	var score float64
	for _, token := range tokens {
		if strings.Contains(name, token) {
			score += NameMatchWeight
		}
		if strings.Contains(description, token) {
			score += DescriptionMatchWeight
		}
		if strings.Contains(brand, token) {
			score += BrandMatchWeight
		}
		if strings.Contains(category, token) {
			score += CategoryMatchWeight
		}
		if anyContains(tags, token) {
			score += TagMatchWeight
		}

		score += fuzzyScore(token, words)

		for _, synonym := range s.synonyms[token] {
			if strings.Contains(text, synonym) {
				score += SynonymMatchWeight
			}
		}
	}

	return score
}

// fuzzyScore rewards the single closest word when it clears the threshold.
func fuzzyScore(token string, words []string) float64 {
	var best float64
	for _, word := range words {
		similarity := NormalizedSimilarity(token, word)
		if similarity > FuzzyThreshold {
			best = max(best, similarity*FuzzyMatchWeight)
		}
	}
	return best
}

func anyContains(values []string, token string) bool {
	for _, v := range values {
		if strings.Contains(v, token) {
			return true
		}
	}
	return false
}
