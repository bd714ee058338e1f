package differ

import (
	"reputrack/internal/models"

	"github.com/rs/zerolog"
)

// KeywordComparer diffs the result lists of one keyword across two scans.
type KeywordComparer struct {
	matcher    *ResultMatcher
	classifier *MovementClassifier
	logger     zerolog.Logger
}

// NewKeywordComparer creates a new keyword comparer
func NewKeywordComparer(config CompareConfig, logger zerolog.Logger) *KeywordComparer {
	return &KeywordComparer{
		matcher:    NewResultMatcher(config, logger),
		classifier: NewMovementClassifier(config, logger),
		logger:     logger.With().Str("component", "KeywordComparer").Logger(),
	}
}

// Compare builds the KeywordComparison for a keyword present in the current
// scan. A nil previous group means the keyword is new: every link inside is
// new and the keyword carries no previous position. Otherwise the link lists
// are matched and classified pairwise and the keyword itself is stable, with
// its own position delta recorded.
func (kc *KeywordComparer) Compare(currentGroup *models.KeywordGroup, previousGroup *models.KeywordGroup) models.KeywordComparison {
	if previousGroup == nil {
		return kc.markAllNew(currentGroup)
	}

	pairs := kc.matcher.Match(currentGroup.Links, previousGroup.Links)
	links := make([]models.LinkComparison, 0, len(pairs))
	for _, pair := range pairs {
		links = append(links, kc.classifier.Classify(pair))
	}

	return models.KeywordComparison{
		Keyword:          currentGroup.Keyword,
		Type:             models.MovementStable,
		CurrentPosition:  models.IntPtr(currentGroup.Position),
		PreviousPosition: models.IntPtr(previousGroup.Position),
		Change:           models.IntPtr(currentGroup.Position - previousGroup.Position),
		Links:            links,
	}
}

// Disappeared builds the KeywordComparison for a keyword present only in the
// previous scan. Its links are not re-attributed to other keywords; the entry
// carries an empty link list.
func (kc *KeywordComparer) Disappeared(previousGroup *models.KeywordGroup) models.KeywordComparison {
	return models.KeywordComparison{
		Keyword:          previousGroup.Keyword,
		Type:             models.MovementDisappeared,
		PreviousPosition: models.IntPtr(previousGroup.Position),
		Links:            []models.LinkComparison{},
	}
}

func (kc *KeywordComparer) markAllNew(currentGroup *models.KeywordGroup) models.KeywordComparison {
	links := make([]models.LinkComparison, 0, len(currentGroup.Links))
	for i := range currentGroup.Links {
		links = append(links, kc.classifier.Classify(ResultPair{Current: &currentGroup.Links[i]}))
	}

	return models.KeywordComparison{
		Keyword:         currentGroup.Keyword,
		Type:            models.MovementNew,
		CurrentPosition: models.IntPtr(currentGroup.Position),
		Links:           links,
	}
}
