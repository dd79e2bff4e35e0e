package domain

// Outcome messages returned alongside every recommendation result
const (
	MessageNoProducts = "No products found for the specified condition and criteria."
	MessageSuccess    = "Successfully found recommendations."
)

// Result sources
const (
	SourceComputed = "computed"
	SourceCache    = "cache"
)

// DefaultRecommendationLimit is used when a request does not set a limit
const DefaultRecommendationLimit = 3

// RecommendRequest represents a recommendation query for a skin condition
type RecommendRequest struct {
	Condition string   `json:"condition"`
	Limit     *int     `json:"limit,omitempty"`    // nil means the service default
	MaxPrice  *float64 `json:"maxPrice,omitempty"` // nil means no price ceiling
}

// Recommendation is one ranked product in a recommendation result
type Recommendation struct {
	ProductID      int     `json:"productId"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	RelevanceScore float64 `json:"relevanceScore"` // mean cosine similarity within the filtered set
}

// RecommendationResult holds the ranked rows and the outcome message
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message"`
	Source          string           `json:"source"` // "computed" or "cache"
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// Float64Ptr returns a pointer to v
func Float64Ptr(v float64) *float64 {
	return &v
}
