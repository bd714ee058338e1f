package ranking

import (
	"testing"

	"reputrack/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comparisonWithLinks(links ...models.LinkComparison) *models.ComparisonResult {
	return &models.ComparisonResult{
		ScanID:        "scan-1",
		TotalKeywords: 1,
		Comparisons: []models.KeywordComparison{
			{Keyword: "acme", Type: models.MovementStable, Links: links},
		},
	}
}

func movedLink(url string, movement models.MovementType, change int) models.LinkComparison {
	return models.LinkComparison{
		URL:    url,
		Type:   movement,
		Change: models.IntPtr(change),
	}
}

func unmatchedLink(url string, movement models.MovementType) models.LinkComparison {
	return models.LinkComparison{URL: url, Type: movement}
}

func TestScoreEngine_Weights(t *testing.T) {
	se := NewScoreEngine(zerolog.Nop())

	score := se.Score(comparisonWithLinks(
		movedLink("a", models.MovementImproved, -3), // +2
		unmatchedLink("b", models.MovementNew),      // +1
		movedLink("c", models.MovementStable, 0),    //  0
		movedLink("d", models.MovementDropped, 2),   // -1
		unmatchedLink("e", models.MovementDisappeared), // -2
	))

	assert.Equal(t, 0, score.Score)
	assert.Equal(t, 5, score.TotalLinks)
	assert.InDelta(t, 0.0, score.AverageScore, 1e-9)
	assert.Equal(t, models.RatingNeutral, score.Rating)
}

func TestScoreEngine_NewPlusDisappeared(t *testing.T) {
	// 2 new links and 3 disappeared links: score = 2*1 + 3*(-2).
	se := NewScoreEngine(zerolog.Nop())

	score := se.Score(comparisonWithLinks(
		unmatchedLink("n1", models.MovementNew),
		unmatchedLink("n2", models.MovementNew),
		unmatchedLink("d1", models.MovementDisappeared),
		unmatchedLink("d2", models.MovementDisappeared),
		unmatchedLink("d3", models.MovementDisappeared),
	))

	assert.Equal(t, -4, score.Score)
	assert.Equal(t, 5, score.TotalLinks)
	assert.Equal(t, models.RatingCritical, score.Rating)
}

func TestScoreEngine_EmptyComparison(t *testing.T) {
	se := NewScoreEngine(zerolog.Nop())

	score := se.Score(&models.ComparisonResult{ScanID: "scan-1"})

	assert.Equal(t, 0, score.Score)
	assert.Equal(t, 0, score.TotalLinks)
	assert.Zero(t, score.AverageScore)
	assert.Equal(t, models.RatingNotAvailable, score.Rating)
}

func TestScoreEngine_RatingThresholds(t *testing.T) {
	cases := []struct {
		average float64
		want    models.Rating
	}{
		{1.5, models.RatingExcellent},
		{1.0, models.RatingExcellent},
		{0.5, models.RatingGood},
		{0.0, models.RatingNeutral},
		{-0.5, models.RatingPoor},
		{-1.0, models.RatingCritical},
	}
	for _, tc := range cases {
		got := ratingFor(tc.average, 10)
		if got != tc.want {
			t.Errorf("ratingFor(%v) = %s, want %s", tc.average, got, tc.want)
		}
	}
}

func TestScoreEngine_ScoreMonotonicity(t *testing.T) {
	se := NewScoreEngine(zerolog.Nop())

	base := comparisonWithLinks(
		movedLink("a", models.MovementDropped, 3),
		unmatchedLink("b", models.MovementNew),
	)
	before := se.Score(base)

	augmented := comparisonWithLinks(
		movedLink("a", models.MovementDropped, 3),
		unmatchedLink("b", models.MovementNew),
		movedLink("c", models.MovementImproved, -1),
	)
	after := se.Score(augmented)

	assert.Equal(t, before.Score+2, after.Score)
	assert.GreaterOrEqual(t, after.AverageScore, before.AverageScore)
}

func TestScoreEngine_TopImprovements(t *testing.T) {
	se := NewScoreEngine(zerolog.Nop())

	comparison := comparisonWithLinks(
		movedLink("small", models.MovementImproved, -1),
		movedLink("big", models.MovementImproved, -9),
		movedLink("mid1", models.MovementImproved, -4),
		movedLink("mid2", models.MovementImproved, -4),
		movedLink("dropped", models.MovementDropped, 5),
		movedLink("tiny", models.MovementImproved, -2),
		movedLink("also-big", models.MovementImproved, -7),
	)

	top := se.TopImprovements(comparison)
	require.Len(t, top, 5)

	var urls []string
	for _, entry := range top {
		urls = append(urls, entry.URL)
	}
	// Descending by |change|; mid1 before mid2 because the sort is stable.
	assert.Equal(t, []string{"big", "also-big", "mid1", "mid2", "tiny"}, urls)
}

func TestScoreEngine_TopConcernsIncludeDisappeared(t *testing.T) {
	se := NewScoreEngine(zerolog.Nop())

	comparison := comparisonWithLinks(
		movedLink("slipped", models.MovementDropped, 6),
		unmatchedLink("vanished", models.MovementDisappeared),
		movedLink("improved", models.MovementImproved, -3),
	)

	concerns := se.TopConcerns(comparison)
	require.Len(t, concerns, 2)
	assert.Equal(t, "slipped", concerns[0].URL)
	assert.Equal(t, "vanished", concerns[1].URL)
}

func TestScoreEngine_Recommendations(t *testing.T) {
	se := NewScoreEngine(zerolog.Nop())

	comparison := &models.ComparisonResult{
		ScanID:              "scan-1",
		NewKeywords:         1,
		DisappearedKeywords: 2,
	}
	score := models.RankingScore{Rating: models.RatingPoor}

	recs := se.Recommendations(comparison, score)
	require.Len(t, recs, 3)

	categories := make(map[string]models.RecommendationPriority)
	for _, rec := range recs {
		categories[rec.Category] = rec.Priority
	}
	assert.Equal(t, models.PriorityHigh, categories["Reputation Recovery"])
	assert.Equal(t, models.PriorityMedium, categories["Keyword Expansion"])
	assert.Equal(t, models.PriorityHigh, categories["Keyword Recovery"])
}
