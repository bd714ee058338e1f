package ranking

import "reputrack/internal/models"

// Recommendations derives actionable suggestions from a comparison outcome
// and its score. The list is deterministic: same input, same output.
func (se *ScoreEngine) Recommendations(comparison *models.ComparisonResult, score models.RankingScore) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, 4)

	if score.Rating == models.RatingCritical || score.Rating == models.RatingPoor {
		recommendations = append(recommendations, models.Recommendation{
			Priority:    models.PriorityHigh,
			Category:    "Reputation Recovery",
			Action:      "Implement immediate reputation recovery strategy",
			Description: "Focus on addressing negative content and improving positive mentions",
		})
	}

	if comparison.NewKeywords > 0 {
		recommendations = append(recommendations, models.Recommendation{
			Priority:    models.PriorityMedium,
			Category:    "Keyword Expansion",
			Action:      "Monitor new keyword performance",
			Description: "Track the performance of newly added keywords and optimize content",
		})
	}

	if comparison.DisappearedKeywords > 0 {
		recommendations = append(recommendations, models.Recommendation{
			Priority:    models.PriorityHigh,
			Category:    "Keyword Recovery",
			Action:      "Investigate disappeared keywords",
			Description: "Analyze why certain keywords are no longer appearing in search results",
		})
	}

	if comparison.ImprovedKeywords > 0 {
		recommendations = append(recommendations, models.Recommendation{
			Priority:    models.PriorityLow,
			Category:    "Optimization",
			Action:      "Continue current strategy",
			Description: "Maintain and build upon the positive momentum",
		})
	}

	return recommendations
}

// BuildReport assembles the report-ready view of a comparison: score,
// counters, top movement lists, and recommendations.
func (se *ScoreEngine) BuildReport(comparison *models.ComparisonResult, scan *models.Scan) models.ComparisonReport {
	score := se.Score(comparison)

	report := models.ComparisonReport{
		ScanID:         comparison.ScanID,
		PreviousScanID: comparison.PreviousScanID,
		ComparisonDate: comparison.ComparisonDate,
		OverallScore:   score.Score,
		TotalLinks:     score.TotalLinks,
		AverageScore:   score.AverageScore,
		Rating:         score.Rating,
		Summary: models.MovementSummary{
			TotalKeywords:       comparison.TotalKeywords,
			NewKeywords:         comparison.NewKeywords,
			DisappearedKeywords: comparison.DisappearedKeywords,
			ImprovedKeywords:    comparison.ImprovedKeywords,
			DroppedKeywords:     comparison.DroppedKeywords,
			StableKeywords:      comparison.StableKeywords,
		},
		TopImprovements: se.TopImprovements(comparison),
		TopConcerns:     se.TopConcerns(comparison),
	}
	report.Recommendations = se.Recommendations(comparison, score)

	if scan != nil {
		report.ClientName = scan.ClientName
		report.Region = scan.Region
	}

	return report
}
