package models

import "time"

// MovementSummary holds the keyword-level counters shown at the top of a report.
type MovementSummary struct {
	TotalKeywords       int `json:"total_keywords"`
	NewKeywords         int `json:"new_keywords"`
	DisappearedKeywords int `json:"disappeared_keywords"`
	ImprovedKeywords    int `json:"improved_keywords"`
	DroppedKeywords     int `json:"dropped_keywords"`
	StableKeywords      int `json:"stable_keywords"`
}

// ComparisonReport is the report-ready view of a comparison: the score, the
// counters, the top movement lists, and the recommendations. The reporter
// renders it to JSON and HTML; PDF/Excel rendering happens elsewhere.
type ComparisonReport struct {
	ClientName      string           `json:"client_name"`
	Region          string           `json:"region"`
	ScanID          string           `json:"scan_id"`
	PreviousScanID  string           `json:"previous_scan_id,omitempty"`
	ComparisonDate  time.Time        `json:"comparison_date"`
	GeneratedAt     time.Time        `json:"generated_at"`
	OverallScore    int              `json:"overall_score"`
	TotalLinks      int              `json:"total_links"`
	AverageScore    float64          `json:"average_score"`
	Rating          Rating           `json:"rating"`
	Summary         MovementSummary  `json:"summary"`
	TopImprovements []RankedLink     `json:"top_improvements"`
	TopConcerns     []RankedLink     `json:"top_concerns"`
	Recommendations []Recommendation `json:"recommendations"`
}
