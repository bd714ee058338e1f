package models

import "time"

// MovementType classifies how a result or keyword moved between two scans.
type MovementType string

const (
	// MovementNew indicates an entry present in the current scan but not the previous one.
	MovementNew MovementType = "new"
	// MovementImproved indicates an entry that moved to a better (numerically lower) position.
	MovementImproved MovementType = "improved"
	// MovementDropped indicates an entry that moved to a worse (numerically higher) position.
	MovementDropped MovementType = "dropped"
	// MovementDisappeared indicates an entry present in the previous scan but gone from the current one.
	MovementDisappeared MovementType = "disappeared"
	// MovementStable indicates an entry whose position did not change.
	MovementStable MovementType = "stable"
)

// LinkComparison represents the movement of a single URL between two scans.
// Positions and Change are nil when the corresponding side is absent:
// a new link has no previous position, a disappeared link no current one.
type LinkComparison struct {
	URL               string       `json:"url"`
	Title             string       `json:"title"`
	Type              MovementType `json:"type"`
	CurrentPosition   *int         `json:"current_position"`
	PreviousPosition  *int         `json:"previous_position"`
	Change            *int         `json:"change"`
	Sentiment         Sentiment    `json:"sentiment"`
	PreviousSentiment Sentiment    `json:"previous_sentiment,omitempty"`
	Domain            string       `json:"domain,omitempty"`
	TitleChanged      bool         `json:"title_changed,omitempty"`
	TitleDiff         string       `json:"title_diff,omitempty"`
}

// KeywordComparison represents the movement of one keyword between two scans,
// including the per-link comparisons underneath it.
type KeywordComparison struct {
	Keyword          string           `json:"keyword"`
	Type             MovementType     `json:"type"`
	CurrentPosition  *int             `json:"current_position"`
	PreviousPosition *int             `json:"previous_position"`
	Change           *int             `json:"change"`
	Links            []LinkComparison `json:"links"`
}

// ComparisonResult is the full outcome of comparing a scan against its
// predecessor. Downstream consumers (reports, dashboards) treat it as read-only.
type ComparisonResult struct {
	ScanID              string              `json:"scan_id"`
	PreviousScanID      string              `json:"previous_scan_id,omitempty"`
	ComparisonDate      time.Time           `json:"comparison_date"`
	TotalKeywords       int                 `json:"total_keywords"`
	NewKeywords         int                 `json:"new_keywords"`
	DisappearedKeywords int                 `json:"disappeared_keywords"`
	ImprovedKeywords    int                 `json:"improved_keywords"`
	DroppedKeywords     int                 `json:"dropped_keywords"`
	StableKeywords      int                 `json:"stable_keywords"`
	Comparisons         []KeywordComparison `json:"comparisons"`
}

// IntPtr returns a pointer to v. Helper for the nullable position fields.
func IntPtr(v int) *int {
	return &v
}
