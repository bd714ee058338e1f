package differ

import (
	"reputrack/internal/models"
	"reputrack/internal/urlhandler"

	"github.com/rs/zerolog"
)

// ResultPair pairs a current search result with its previous-scan counterpart.
// At least one side is always present: (current, nil) for unmatched current
// results, (nil, previous) for previous results absent from the current scan.
type ResultPair struct {
	Current  *models.SearchResult
	Previous *models.SearchResult
}

// ResultMatcher pairs current and previous search results by URL identity.
// Raw URL equality is tried first as a fast path, normalized equality as the
// fallback.
type ResultMatcher struct {
	logger zerolog.Logger
	config CompareConfig
}

// NewResultMatcher creates a new result matcher
func NewResultMatcher(config CompareConfig, logger zerolog.Logger) *ResultMatcher {
	return &ResultMatcher{
		logger: logger.With().Str("component", "ResultMatcher").Logger(),
		config: config,
	}
}

// Match pairs the two result lists. Ordering is deterministic: current-side
// pairs first in current order, then unclaimed previous results in previous
// order. Inputs are never mutated.
//
// When the previous list contains duplicate URLs the first textual match in
// iteration order wins; the ambiguity is logged, not fatal, since search
// pages legitimately contain near-duplicate entries.
func (rm *ResultMatcher) Match(current, previous []models.SearchResult) []ResultPair {
	pairs := make([]ResultPair, 0, len(current)+len(previous))
	claimed := make([]bool, len(previous))

	if rm.config.WarnOnDuplicateURLs {
		rm.warnDuplicates(previous)
	}

	for i := range current {
		matchIdx := rm.findMatch(&current[i], previous, claimed)
		if matchIdx < 0 {
			pairs = append(pairs, ResultPair{Current: &current[i]})
			continue
		}
		claimed[matchIdx] = true
		pairs = append(pairs, ResultPair{Current: &current[i], Previous: &previous[matchIdx]})
	}

	for j := range previous {
		if !claimed[j] {
			pairs = append(pairs, ResultPair{Previous: &previous[j]})
		}
	}

	return pairs
}

// findMatch returns the index of the first previous result matching the given
// current result, or -1. Raw equality wins over normalized equality.
func (rm *ResultMatcher) findMatch(cur *models.SearchResult, previous []models.SearchResult, claimed []bool) int {
	for j := range previous {
		if !claimed[j] && previous[j].URL == cur.URL {
			return j
		}
	}

	normalized := urlhandler.NormalizeURL(cur.URL)
	for j := range previous {
		if !claimed[j] && urlhandler.NormalizeURL(previous[j].URL) == normalized {
			return j
		}
	}

	return -1
}

// warnDuplicates logs previous-scan URLs that occur more than once, which
// makes the first-match rule pick arbitrarily among them.
func (rm *ResultMatcher) warnDuplicates(previous []models.SearchResult) {
	seen := make(map[string]int, len(previous))
	for i := range previous {
		key := urlhandler.NormalizeURL(previous[i].URL)
		seen[key]++
	}
	for key, count := range seen {
		if count > 1 {
			rm.logger.Warn().
				Str("url", key).
				Int("occurrences", count).
				Msg("Duplicate URL in previous results, first match wins")
		}
	}
}
