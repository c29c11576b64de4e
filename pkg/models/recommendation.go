package models

import "time"

// Recommendation is one scored product recommendation. Score is clamped to
// [0,100] and Reasons lists every rule that contributed, in evaluation
// order.
type Recommendation struct {
	Product         Product  `json:"product"`
	Score           float64  `json:"score"`
	Reasons         []string `json:"reasons"`
	NeighborUserIDs []int    `json:"neighbor_user_ids,omitempty"`
	RelatedCategory string   `json:"related_category,omitempty"`
}

type RecommendationResponse struct {
	UserID          int              `json:"user_id"`
	Recommendations []Recommendation `json:"recommendations"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

type SimilarityResponse struct {
	UserID      int     `json:"user_id"`
	OtherUserID int     `json:"other_user_id"`
	Similarity  float64 `json:"similarity"`
}

type NeighborsResponse struct {
	UserID    int           `json:"user_id"`
	Neighbors []SimilarUser `json:"neighbors"`
}

type ExplanationResponse struct {
	UserID      int    `json:"user_id"`
	ProductID   int    `json:"product_id"`
	Explanation string `json:"explanation"`
}

// TrendReport holds the most purchased products and categories across every
// user's neighborhood, at most five of each.
type TrendReport struct {
	TopProducts   []string `json:"top_products"`
	TopCategories []string `json:"top_categories"`
}
