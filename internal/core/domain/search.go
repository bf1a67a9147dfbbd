package domain

// SortOption selects how search results are ordered.
type SortOption string

// Available sort options.
const (
	// SortRelevance keeps the relevance ranking. It is the default.
	SortRelevance SortOption = "relevance"

	// SortPriceLowHigh orders by ascending price.
	SortPriceLowHigh SortOption = "price-low-high"

	// SortPriceHighLow orders by descending price.
	SortPriceHighLow SortOption = "price-high-low"

	// SortRating orders by descending rating; unrated products count as 0.
	SortRating SortOption = "rating"

	// SortNewest floats new arrivals to the front.
	SortNewest SortOption = "newest"

	// SortNameAZ orders by name, A to Z.
	SortNameAZ SortOption = "name-a-z"

	// SortNameZA orders by name, Z to A.
	SortNameZA SortOption = "name-z-a"
)

// IsValid returns true if the sort option is recognised.
// The empty option is valid and means relevance.
func (s SortOption) IsValid() bool {
	switch s {
	case "", SortRelevance, SortPriceLowHigh, SortPriceHighLow, SortRating, SortNewest, SortNameAZ, SortNameZA:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SortOption) String() string {
	if s == "" {
		return string(SortRelevance)
	}
	return string(s)
}

// AllSortOptions returns every supported sort option.
func AllSortOptions() []SortOption {
	return []SortOption{
		SortRelevance,
		SortPriceLowHigh,
		SortPriceHighLow,
		SortRating,
		SortNewest,
		SortNameAZ,
		SortNameZA,
	}
}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies within [Min, Max].
// A range with Min > Max contains nothing.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// SearchFilters narrows a search. Nil and empty fields do not filter.
type SearchFilters struct {
	// Category requires an exact category match.
	Category string `json:"category,omitempty"`

	// Brand requires an exact brand match.
	Brand string `json:"brand,omitempty"`

	// PriceRange keeps products priced within the interval.
	PriceRange *PriceRange `json:"priceRange,omitempty"`

	// Colors keeps products offering at least one of the named colours.
	Colors []string `json:"colors,omitempty"`

	// Sizes keeps products offering at least one of the named sizes.
	Sizes []string `json:"sizes,omitempty"`

	// MinRating drops rated products below the threshold. Unrated products pass.
	MinRating *float64 `json:"rating,omitempty"`

	// InStock requires the product's stock flag to equal the value.
	InStock *bool `json:"inStock,omitempty"`
}

// IsEmpty reports whether no filter is set.
func (f SearchFilters) IsEmpty() bool {
	return f.Category == "" &&
		f.Brand == "" &&
		f.PriceRange == nil &&
		len(f.Colors) == 0 &&
		len(f.Sizes) == 0 &&
		f.MinRating == nil &&
		f.InStock == nil
}

// SuggestionType tags the origin of an autocomplete suggestion.
type SuggestionType string

// Suggestion variants.
const (
	SuggestionProduct  SuggestionType = "product"
	SuggestionCategory SuggestionType = "category"
	SuggestionBrand    SuggestionType = "brand"
	SuggestionQuery    SuggestionType = "query"
)

// SearchSuggestion is one autocomplete candidate.
type SearchSuggestion struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	Type       SuggestionType    `json:"type"`
	Popularity int               `json:"popularity"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// FacetCount is a named bucket with the number of products in it.
type FacetCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Price bucket labels, in display order.
const (
	PriceBucketUnder50  = "$0 - $50"
	PriceBucket51To100  = "$51 - $100"
	PriceBucket101To200 = "$101 - $200"
	PriceBucketOver200  = "$201+"
)

// Facets aggregates a result set for narrowing.
type Facets struct {
	Categories  []FacetCount `json:"categories"`
	Brands      []FacetCount `json:"brands"`
	PriceRanges []FacetCount `json:"priceRanges"`
	Colors      []FacetCount `json:"colors"`
	Sizes       []FacetCount `json:"sizes"`
}

// SearchResult is the outcome of one search call.
// TotalCount always equals len(Products) and Facets describe Products.
type SearchResult struct {
	Products    []Product          `json:"products"`
	Suggestions []SearchSuggestion `json:"suggestions"`
	TotalCount  int                `json:"totalCount"`
	Facets      Facets             `json:"facets"`
}

// PopularQuery is a logged query with its occurrence count.
type PopularQuery struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// QueryLogSnapshot is the persisted form of the query popularity log.
// Popular keeps first-seen order so ties rank deterministically after reload.
type QueryLogSnapshot struct {
	History []string       `json:"history"`
	Popular []PopularQuery `json:"popular"`
}
