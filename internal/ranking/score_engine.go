package ranking

import (
	"sort"

	"reputrack/internal/models"

	"github.com/rs/zerolog"
)

// Movement weights applied per link when scoring a comparison.
const (
	weightImproved    = 2
	weightNew         = 1
	weightStable      = 0
	weightDropped     = -1
	weightDisappeared = -2
)

// topListSize is the length of the top-improvements and top-concerns lists.
const topListSize = 5

// ScoreEngine converts a completed ComparisonResult into a weighted numeric
// score, a qualitative rating, and the derived report views (top movements,
// recommendations). Scores are recomputed on demand, never persisted.
type ScoreEngine struct {
	logger zerolog.Logger
}

// NewScoreEngine creates a new score engine
func NewScoreEngine(logger zerolog.Logger) *ScoreEngine {
	return &ScoreEngine{
		logger: logger.With().Str("component", "ScoreEngine").Logger(),
	}
}

// Score sums the movement weights over every link of every keyword
// comparison. An empty comparison (no links at all) scores zero with an N/A
// rating.
func (se *ScoreEngine) Score(comparison *models.ComparisonResult) models.RankingScore {
	score := 0
	totalLinks := 0

	for i := range comparison.Comparisons {
		for j := range comparison.Comparisons[i].Links {
			score += movementWeight(comparison.Comparisons[i].Links[j].Type)
			totalLinks++
		}
	}

	averageScore := 0.0
	if totalLinks > 0 {
		averageScore = float64(score) / float64(totalLinks)
	}

	return models.RankingScore{
		Score:        score,
		TotalLinks:   totalLinks,
		AverageScore: averageScore,
		Rating:       ratingFor(averageScore, totalLinks),
	}
}

// movementWeight returns the per-link score contribution of a movement type.
func movementWeight(movement models.MovementType) int {
	switch movement {
	case models.MovementImproved:
		return weightImproved
	case models.MovementNew:
		return weightNew
	case models.MovementDropped:
		return weightDropped
	case models.MovementDisappeared:
		return weightDisappeared
	default:
		return weightStable
	}
}

// ratingFor maps an average per-link score to a qualitative rating.
// Thresholds are evaluated top-down, first match wins.
func ratingFor(averageScore float64, totalLinks int) models.Rating {
	if totalLinks == 0 {
		return models.RatingNotAvailable
	}

	switch {
	case averageScore >= 1:
		return models.RatingExcellent
	case averageScore >= 0.5:
		return models.RatingGood
	case averageScore >= 0:
		return models.RatingNeutral
	case averageScore >= -0.5:
		return models.RatingPoor
	default:
		return models.RatingCritical
	}
}

// TopImprovements returns the improved links with the greatest absolute
// position change, at most five. Ties keep their original encounter order
// (stable sort), so results are reproducible.
func (se *ScoreEngine) TopImprovements(comparison *models.ComparisonResult) []models.RankedLink {
	improvements := collectLinks(comparison, func(lc *models.LinkComparison) bool {
		return lc.Type == models.MovementImproved
	})
	return topByAbsChange(improvements)
}

// TopConcerns returns the dropped and disappeared links with the greatest
// absolute position change, at most five, ties in encounter order.
func (se *ScoreEngine) TopConcerns(comparison *models.ComparisonResult) []models.RankedLink {
	concerns := collectLinks(comparison, func(lc *models.LinkComparison) bool {
		return lc.Type == models.MovementDropped || lc.Type == models.MovementDisappeared
	})
	return topByAbsChange(concerns)
}

func collectLinks(comparison *models.ComparisonResult, keep func(*models.LinkComparison) bool) []models.RankedLink {
	var collected []models.RankedLink
	for i := range comparison.Comparisons {
		kc := &comparison.Comparisons[i]
		for j := range kc.Links {
			lc := &kc.Links[j]
			if !keep(lc) {
				continue
			}
			collected = append(collected, models.RankedLink{
				Keyword:          kc.Keyword,
				URL:              lc.URL,
				Title:            lc.Title,
				Type:             lc.Type,
				PositionChange:   lc.Change,
				CurrentPosition:  lc.CurrentPosition,
				PreviousPosition: lc.PreviousPosition,
			})
		}
	}
	return collected
}

func topByAbsChange(links []models.RankedLink) []models.RankedLink {
	sort.SliceStable(links, func(i, j int) bool {
		return absChange(links[i].PositionChange) > absChange(links[j].PositionChange)
	})
	if len(links) > topListSize {
		links = links[:topListSize]
	}
	return links
}

// absChange treats a nil change (new/disappeared entries) as zero magnitude.
func absChange(change *int) int {
	if change == nil {
		return 0
	}
	if *change < 0 {
		return -*change
	}
	return *change
}
