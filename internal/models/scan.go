package models

import "time"

// ScanStatus represents the lifecycle state of a scan.
type ScanStatus string

const (
	// ScanStatusPending indicates a scan that has been created but not started.
	ScanStatusPending ScanStatus = "pending"
	// ScanStatusRunning indicates a scan that is currently collecting results.
	ScanStatusRunning ScanStatus = "running"
	// ScanStatusCompleted indicates a scan whose results are final.
	ScanStatusCompleted ScanStatus = "completed"
	// ScanStatusFailed indicates a scan that aborted before completion.
	ScanStatusFailed ScanStatus = "failed"
)

// Scan represents one complete search-and-analyze run for a client in a region.
// A scan is mutated while results arrive and becomes immutable once completed.
// Its previous counterpart (most recent prior completed scan for the same
// client+region) is resolved by the datastore, not stored on the entity.
type Scan struct {
	ID          string         `json:"id"`
	ClientID    string         `json:"client_id"`
	ClientName  string         `json:"client_name,omitempty"`
	Region      string         `json:"region"`
	WeekNumber  int            `json:"week_number,omitempty"`
	Keywords    []KeywordGroup `json:"keywords"`
	Status      ScanStatus     `json:"status"`
	ScanDate    time.Time      `json:"scan_date"`
	CompletedAt time.Time      `json:"completed_at,omitempty"`
}

// KeywordGroupByName returns the keyword group with the given keyword string,
// or nil when the scan does not contain it. Matching is by exact string.
func (s *Scan) KeywordGroupByName(keyword string) *KeywordGroup {
	for i := range s.Keywords {
		if s.Keywords[i].Keyword == keyword {
			return &s.Keywords[i]
		}
	}
	return nil
}

// TotalLinks returns the number of search results across all keyword groups.
func (s *Scan) TotalLinks() int {
	total := 0
	for i := range s.Keywords {
		total += len(s.Keywords[i].Links)
	}
	return total
}
