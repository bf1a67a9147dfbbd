package domain

// SimilarProduct is one ranked neighbour of a product.
type SimilarProduct struct {
	ProductID string  `json:"productId"`
	Score     float64 `json:"score"`
}

// ProductSimilarity is a precomputed neighbour list for one product.
type ProductSimilarity struct {
	ProductID       string           `json:"productId"`
	SimilarProducts []SimilarProduct `json:"similarProducts"`
}
