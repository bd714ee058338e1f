package models

// Rating is the qualitative label derived from the aggregate movement score.
type Rating string

const (
	RatingExcellent    Rating = "Excellent"
	RatingGood         Rating = "Good"
	RatingNeutral      Rating = "Neutral"
	RatingPoor         Rating = "Poor"
	RatingCritical     Rating = "Critical"
	RatingNotAvailable Rating = "N/A"
)

// RankingScore is the weighted movement score derived from a ComparisonResult.
// It is recomputed on demand and never persisted.
type RankingScore struct {
	Score        int     `json:"score"`
	TotalLinks   int     `json:"total_links"`
	AverageScore float64 `json:"average_score"`
	Rating       Rating  `json:"rating"`
}

// RankedLink is one entry of a top-improvements or top-concerns list.
type RankedLink struct {
	Keyword          string       `json:"keyword"`
	URL              string       `json:"url"`
	Title            string       `json:"title"`
	Type             MovementType `json:"type"`
	PositionChange   *int         `json:"position_change"`
	CurrentPosition  *int         `json:"current_position,omitempty"`
	PreviousPosition *int         `json:"previous_position,omitempty"`
}

// RecommendationPriority orders recommendations for report rendering.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "High"
	PriorityMedium RecommendationPriority = "Medium"
	PriorityLow    RecommendationPriority = "Low"
)

// Recommendation is an actionable suggestion derived from a comparison outcome.
type Recommendation struct {
	Priority    RecommendationPriority `json:"priority"`
	Category    string                 `json:"category"`
	Action      string                 `json:"action"`
	Description string                 `json:"description"`
}
