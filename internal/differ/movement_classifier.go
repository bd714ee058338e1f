package differ

import (
	"reputrack/internal/models"

	"github.com/rs/zerolog"
)

// MovementClassifier converts a matched result pair into a LinkComparison.
type MovementClassifier struct {
	titleDiffer *TitleDiffer
	config      CompareConfig
}

// NewMovementClassifier creates a new movement classifier
func NewMovementClassifier(config CompareConfig, logger zerolog.Logger) *MovementClassifier {
	return &MovementClassifier{
		titleDiffer: NewTitleDiffer(),
		config:      config,
	}
}

// Classify assigns a movement type to one result pair. A missing previous
// side is new, a missing current side is disappeared; otherwise the sign of
// the position delta decides: negative is improved (lower position = higher
// rank), positive is dropped, zero is stable.
func (mc *MovementClassifier) Classify(pair ResultPair) models.LinkComparison {
	switch {
	case pair.Previous == nil:
		return models.LinkComparison{
			URL:             pair.Current.URL,
			Title:           pair.Current.Title,
			Type:            models.MovementNew,
			CurrentPosition: models.IntPtr(pair.Current.Position),
			Sentiment:       pair.Current.Sentiment,
			Domain:          pair.Current.Domain,
		}
	case pair.Current == nil:
		return models.LinkComparison{
			URL:              pair.Previous.URL,
			Title:            pair.Previous.Title,
			Type:             models.MovementDisappeared,
			PreviousPosition: models.IntPtr(pair.Previous.Position),
			Sentiment:        pair.Previous.Sentiment,
			Domain:           pair.Previous.Domain,
		}
	default:
		return mc.classifyMatched(pair.Current, pair.Previous)
	}
}

func (mc *MovementClassifier) classifyMatched(current, previous *models.SearchResult) models.LinkComparison {
	change := current.Position - previous.Position

	movement := models.MovementStable
	if change < 0 {
		movement = models.MovementImproved
	} else if change > 0 {
		movement = models.MovementDropped
	}

	comparison := models.LinkComparison{
		URL:               current.URL,
		Title:             current.Title,
		Type:              movement,
		CurrentPosition:   models.IntPtr(current.Position),
		PreviousPosition:  models.IntPtr(previous.Position),
		Change:            models.IntPtr(change),
		Sentiment:         current.Sentiment,
		PreviousSentiment: previous.Sentiment,
		Domain:            current.Domain,
	}

	if mc.config.EnableTitleDiff && current.Title != previous.Title {
		comparison.TitleChanged = true
		comparison.TitleDiff = mc.titleDiffer.Summarize(previous.Title, current.Title)
	}

	return comparison
}
