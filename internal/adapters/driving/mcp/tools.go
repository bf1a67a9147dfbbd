package mcp

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// Default result sizes for tool calls that omit a limit.
const (
	defaultSearchLimit   = 20
	defaultSuggestLimit  = 8
	defaultQueryLimit    = 10
	defaultRecommendSize = 10
	defaultSimilarSize   = 6
)

// SearchInput is the input schema for the search_products tool.
type SearchInput struct {
	Query     string   `json:"query" jsonschema:"free-text query; empty lists the whole catalog"`
	Category  string   `json:"category,omitempty" jsonschema:"exact category, e.g. women"`
	Brand     string   `json:"brand,omitempty" jsonschema:"exact brand name"`
	MinPrice  *float64 `json:"min_price,omitempty" jsonschema:"lowest price, inclusive"`
	MaxPrice  *float64 `json:"max_price,omitempty" jsonschema:"highest price, inclusive"`
	Colors    []string `json:"colors,omitempty" jsonschema:"product must come in at least one of these colours"`
	Sizes     []string `json:"sizes,omitempty" jsonschema:"product must come in at least one of these sizes"`
	MinRating *float64 `json:"min_rating,omitempty" jsonschema:"minimum rating; unrated products pass"`
	InStock   *bool    `json:"in_stock,omitempty" jsonschema:"only products with this stock status"`
	SortBy    string   `json:"sort_by,omitempty" jsonschema:"relevance, price-low-high, price-high-low, rating, newest, name-a-z or name-z-a"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of products to return (default 20)"`
}

// ProductOutput is one product in a tool result.
type ProductOutput struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	InStock       bool     `json:"in_stock"`
	IsNew         bool     `json:"is_new,omitempty"`
}

// SearchOutput is the output schema for the search_products tool.
type SearchOutput struct {
	Products    []ProductOutput           `json:"products"`
	TotalCount  int                       `json:"total_count"`
	Suggestions []domain.SearchSuggestion `json:"suggestions"`
	Facets      domain.Facets             `json:"facets"`
}

// AutocompleteInput is the input schema for the autocomplete tool.
type AutocompleteInput struct {
	Query string `json:"query" jsonschema:"partial query, at least two characters"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of suggestions (default 8)"`
}

// AutocompleteOutput is the output schema for the autocomplete tool.
type AutocompleteOutput struct {
	Suggestions []domain.SearchSuggestion `json:"suggestions"`
}

// QueryListInput is the input schema for trending_queries and search_history.
type QueryListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of queries (default 10)"`
}

// QueryListOutput is the output schema for trending_queries and search_history.
type QueryListOutput struct {
	Queries []string `json:"queries"`
}

// RecommendInput is the input schema for the recommend tool.
type RecommendInput struct {
	UserID           string `json:"user_id,omitempty" jsonschema:"shopper id; defaults to the local shopper"`
	Limit            int    `json:"limit,omitempty" jsonschema:"maximum number of products (default 10)"`
	TimeOfDay        string `json:"time_of_day,omitempty" jsonschema:"morning, afternoon, evening or night; defaults to now"`
	Season           string `json:"season,omitempty" jsonschema:"spring, summer, fall or winter; defaults to now"`
	Occasion         string `json:"occasion,omitempty" jsonschema:"casual, formal, work, party or sport"`
	Weather          string `json:"weather,omitempty" jsonschema:"sunny, rainy, cold or hot"`
	CurrentProductID string `json:"current_product_id,omitempty" jsonschema:"product the shopper is looking at"`
}

// SimilarInput is the input schema for the similar_products tool.
type SimilarInput struct {
	ProductID string `json:"product_id" jsonschema:"product to find neighbours for"`
	UserID    string `json:"user_id,omitempty" jsonschema:"shopper id; defaults to the local shopper"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of products (default 6)"`
}

// ProductListOutput is the output schema for recommend and similar_products.
type ProductListOutput struct {
	Products []ProductOutput `json:"products"`
	Count    int             `json:"count"`
}

// TrackInput is the input schema for the track_interaction tool.
type TrackInput struct {
	UserID          string   `json:"user_id,omitempty" jsonschema:"shopper id; defaults to the local shopper"`
	Type            string   `json:"type" jsonschema:"view, purchase, wishlist or search"`
	ProductID       string   `json:"product_id,omitempty" jsonschema:"product for view, purchase and wishlist"`
	DurationSeconds float64  `json:"duration_seconds,omitempty" jsonschema:"time spent on a product view"`
	Rating          *float64 `json:"rating,omitempty" jsonschema:"rating given with a purchase"`
	Query           string   `json:"query,omitempty" jsonschema:"query for a search interaction"`
	ResultsClicked  []string `json:"results_clicked,omitempty" jsonschema:"product ids opened from a search"`
}

// TrackOutput is the output schema for the track_interaction tool.
type TrackOutput struct {
	Recorded bool `json:"recorded"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_products",
		Description: "Search the product catalog with optional filters, sorting and facets",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "autocomplete",
		Description: "Suggest products, categories, brands and past queries for a partial query",
	}, s.handleAutocomplete)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "trending_queries",
		Description: "List the most frequent search queries",
	}, s.handleTrending)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_history",
		Description: "List the most recent search queries, newest first",
	}, s.handleHistory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recommend",
		Description: "Personalized product recommendations for a shopper and situation",
	}, s.handleRecommend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similar_products",
		Description: "Products similar to a given product",
	}, s.handleSimilar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "track_interaction",
		Description: "Record a shopper view, purchase, wishlist add or search",
	}, s.handleTrack)
}

// handleSearch handles the search_products tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if err := s.allow("search_products"); err != nil {
		return nil, SearchOutput{}, err
	}
	sortBy := domain.SortOption(input.SortBy)
	if !sortBy.IsValid() {
		return nil, SearchOutput{}, fmt.Errorf("sort_by %q: %w", input.SortBy, domain.ErrInvalidInput)
	}
	catalog, err := s.products(ctx)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	result := s.ports.Search.SearchProducts(input.Query, catalog, input.filters(), sortBy)

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return nil, SearchOutput{
		Products:    toProductOutputs(head(result.Products, limit)),
		TotalCount:  result.TotalCount,
		Suggestions: result.Suggestions,
		Facets:      result.Facets,
	}, nil
}

func (in SearchInput) filters() domain.SearchFilters {
	f := domain.SearchFilters{
		Category:  in.Category,
		Brand:     in.Brand,
		Colors:    in.Colors,
		Sizes:     in.Sizes,
		MinRating: in.MinRating,
		InStock:   in.InStock,
	}
	if in.MinPrice != nil || in.MaxPrice != nil {
		r := domain.PriceRange{Min: 0, Max: math.MaxFloat64}
		if in.MinPrice != nil {
			r.Min = *in.MinPrice
		}
		if in.MaxPrice != nil {
			r.Max = *in.MaxPrice
		}
		f.PriceRange = &r
	}
	return f
}

// handleAutocomplete handles the autocomplete tool invocation.
func (s *Server) handleAutocomplete(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AutocompleteInput,
) (*mcp.CallToolResult, AutocompleteOutput, error) {
	if err := s.allow("autocomplete"); err != nil {
		return nil, AutocompleteOutput{}, err
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	suggestions := s.ports.Search.AutocompleteSuggestions(input.Query, limit)
	if suggestions == nil {
		suggestions = []domain.SearchSuggestion{}
	}
	return nil, AutocompleteOutput{Suggestions: suggestions}, nil
}

// handleTrending handles the trending_queries tool invocation.
func (s *Server) handleTrending(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input QueryListInput,
) (*mcp.CallToolResult, QueryListOutput, error) {
	if err := s.allow("trending_queries"); err != nil {
		return nil, QueryListOutput{}, err
	}
	return nil, QueryListOutput{Queries: nonNil(s.ports.Search.TrendingQueries(queryLimit(input.Limit)))}, nil
}

// handleHistory handles the search_history tool invocation.
func (s *Server) handleHistory(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input QueryListInput,
) (*mcp.CallToolResult, QueryListOutput, error) {
	if err := s.allow("search_history"); err != nil {
		return nil, QueryListOutput{}, err
	}
	return nil, QueryListOutput{Queries: nonNil(s.ports.Search.SearchHistory(queryLimit(input.Limit)))}, nil
}

// handleRecommend handles the recommend tool invocation.
func (s *Server) handleRecommend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecommendInput,
) (*mcp.CallToolResult, ProductListOutput, error) {
	if err := s.allow("recommend"); err != nil {
		return nil, ProductListOutput{}, err
	}
	if s.ports.Personalization == nil {
		return nil, ProductListOutput{}, ErrRecommendationsUnavailable
	}
	catalog, err := s.products(ctx)
	if err != nil {
		return nil, ProductListOutput{}, err
	}
	rctx, err := input.context(catalog)
	if err != nil {
		return nil, ProductListOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultRecommendSize
	}
	products := s.ports.Personalization.Recommendations(s.ports.userID(input.UserID), catalog, rctx, limit)
	return nil, productList(products), nil
}

func (in RecommendInput) context(catalog []domain.Product) (domain.RecommendationContext, error) {
	rctx := domain.RecommendationContext{
		TimeOfDay: domain.TimeOfDay(in.TimeOfDay),
		Season:    domain.Season(in.Season),
		Occasion:  domain.Occasion(in.Occasion),
		Weather:   domain.Weather(in.Weather),
	}
	if rctx.TimeOfDay != "" && !rctx.TimeOfDay.IsValid() {
		return rctx, fmt.Errorf("time_of_day %q: %w", in.TimeOfDay, domain.ErrInvalidInput)
	}
	if rctx.Season != "" && !rctx.Season.IsValid() {
		return rctx, fmt.Errorf("season %q: %w", in.Season, domain.ErrInvalidInput)
	}
	if !rctx.Occasion.IsValid() {
		return rctx, fmt.Errorf("occasion %q: %w", in.Occasion, domain.ErrInvalidInput)
	}
	if !rctx.Weather.IsValid() {
		return rctx, fmt.Errorf("weather %q: %w", in.Weather, domain.ErrInvalidInput)
	}
	if in.CurrentProductID != "" {
		if p, ok := domain.FindProduct(catalog, in.CurrentProductID); ok {
			rctx.CurrentProduct = &p
		}
	}
	return rctx, nil
}

// handleSimilar handles the similar_products tool invocation.
func (s *Server) handleSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SimilarInput,
) (*mcp.CallToolResult, ProductListOutput, error) {
	if err := s.allow("similar_products"); err != nil {
		return nil, ProductListOutput{}, err
	}
	if s.ports.Personalization == nil {
		return nil, ProductListOutput{}, ErrRecommendationsUnavailable
	}
	catalog, err := s.products(ctx)
	if err != nil {
		return nil, ProductListOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSimilarSize
	}
	products := s.ports.Personalization.SimilarProducts(s.ports.userID(input.UserID), input.ProductID, catalog, limit)
	return nil, productList(products), nil
}

// handleTrack handles the track_interaction tool invocation.
func (s *Server) handleTrack(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input TrackInput,
) (*mcp.CallToolResult, TrackOutput, error) {
	if err := s.allow("track_interaction"); err != nil {
		return nil, TrackOutput{}, err
	}
	if s.ports.Personalization == nil {
		return nil, TrackOutput{}, ErrRecommendationsUnavailable
	}

	interaction := domain.Interaction{
		Type:           domain.InteractionType(input.Type),
		ProductID:      input.ProductID,
		Duration:       time.Duration(input.DurationSeconds * float64(time.Second)),
		Rating:         input.Rating,
		Query:          input.Query,
		ResultsClicked: input.ResultsClicked,
	}
	if err := s.ports.Personalization.TrackInteraction(s.ports.userID(input.UserID), interaction); err != nil {
		return nil, TrackOutput{}, fmt.Errorf("track %s: %w", input.Type, err)
	}
	return nil, TrackOutput{Recorded: true}, nil
}

func toProductOutputs(products []domain.Product) []ProductOutput {
	out := make([]ProductOutput, len(products))
	for i := range products {
		p := &products[i]
		colors := make([]string, len(p.Colors))
		for j, c := range p.Colors {
			colors[j] = c.Name
		}
		sizes := make([]string, len(p.Sizes))
		for j, sz := range p.Sizes {
			sizes[j] = sz.Name
		}
		out[i] = ProductOutput{
			ID:            p.ID,
			Name:          p.Name,
			Brand:         p.Brand,
			Category:      p.Category,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
			Rating:        p.Rating,
			Tags:          p.Tags,
			Colors:        colors,
			Sizes:         sizes,
			InStock:       p.InStock,
			IsNew:         p.IsNew,
		}
	}
	return out
}

func productList(products []domain.Product) ProductListOutput {
	return ProductListOutput{Products: toProductOutputs(products), Count: len(products)}
}

func head(products []domain.Product, limit int) []domain.Product {
	if len(products) > limit {
		return products[:limit]
	}
	return products
}

func queryLimit(limit int) int {
	if limit <= 0 {
		return defaultQueryLimit
	}
	return limit
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
