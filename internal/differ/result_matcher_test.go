package differ

import (
	"testing"

	"reputrack/internal/models"

	"github.com/rs/zerolog"
)

func TestResultMatcher_RawMatchBeforeNormalized(t *testing.T) {
	rm := NewResultMatcher(DefaultCompareConfig(), zerolog.Nop())

	current := []models.SearchResult{{URL: "https://example.com/page", Position: 1}}
	previous := []models.SearchResult{
		{URL: "example.com/page", Position: 5},
		{URL: "https://example.com/page", Position: 3},
	}

	pairs := rm.Match(current, previous)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	// The raw-equal entry at position 3 wins over the normalized-equal one.
	if pairs[0].Previous == nil || pairs[0].Previous.Position != 3 {
		t.Errorf("expected raw URL match to claim position 3, got %+v", pairs[0].Previous)
	}
	if pairs[1].Current != nil || pairs[1].Previous.Position != 5 {
		t.Errorf("expected leftover previous entry at position 5, got %+v", pairs[1])
	}
}

func TestResultMatcher_DuplicatePreviousURLsFirstMatchWins(t *testing.T) {
	rm := NewResultMatcher(DefaultCompareConfig(), zerolog.Nop())

	current := []models.SearchResult{{URL: "example.com", Position: 1}}
	previous := []models.SearchResult{
		{URL: "example.com", Position: 2},
		{URL: "example.com", Position: 7},
	}

	pairs := rm.Match(current, previous)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Previous.Position != 2 {
		t.Errorf("expected first textual match (position 2), got %d", pairs[0].Previous.Position)
	}
}

func TestResultMatcher_EveryPairHasAtLeastOneSide(t *testing.T) {
	rm := NewResultMatcher(DefaultCompareConfig(), zerolog.Nop())

	current := []models.SearchResult{
		{URL: "https://a.example.com", Position: 1},
		{URL: "https://b.example.com", Position: 2},
	}
	previous := []models.SearchResult{
		{URL: "https://b.example.com", Position: 1},
		{URL: "https://c.example.com", Position: 2},
	}

	pairs := rm.Match(current, previous)
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}
	for i, p := range pairs {
		if p.Current == nil && p.Previous == nil {
			t.Errorf("pair %d has both sides absent", i)
		}
	}
}

func TestMovementClassifier_TieIsStable(t *testing.T) {
	mc := NewMovementClassifier(DefaultCompareConfig(), zerolog.Nop())

	cur := models.SearchResult{URL: "example.com", Title: "t", Position: 4}
	prev := models.SearchResult{URL: "example.com", Title: "t", Position: 4}

	lc := mc.Classify(ResultPair{Current: &cur, Previous: &prev})
	if lc.Type != models.MovementStable {
		t.Errorf("expected stable for zero delta, got %s", lc.Type)
	}
	if lc.Change == nil || *lc.Change != 0 {
		t.Errorf("expected zero change, got %v", lc.Change)
	}
}

func TestMovementClassifier_TitleChangeDetected(t *testing.T) {
	mc := NewMovementClassifier(DefaultCompareConfig(), zerolog.Nop())

	cur := models.SearchResult{URL: "example.com", Title: "Acme fined by regulator", Position: 2}
	prev := models.SearchResult{URL: "example.com", Title: "Acme praised by regulator", Position: 2}

	lc := mc.Classify(ResultPair{Current: &cur, Previous: &prev})
	if !lc.TitleChanged {
		t.Errorf("expected title change to be flagged")
	}
	if lc.TitleDiff == "" {
		t.Errorf("expected non-empty title diff summary")
	}
}
