package differ

import (
	"time"

	"reputrack/internal/errorwrapper"
	"reputrack/internal/models"

	"github.com/rs/zerolog"
)

// ScanComparer is responsible for comparing a completed scan against the most
// recent prior completed scan for the same client and region. The comparer is
// pure computation over in-memory collections: it never mutates its inputs,
// so callers may run comparisons for different clients concurrently.
type ScanComparer struct {
	keywordComparer *KeywordComparer
	logger          zerolog.Logger
	config          CompareConfig
}

// ScanComparerBuilder provides a fluent interface for creating ScanComparer
type ScanComparerBuilder struct {
	logger zerolog.Logger
	config CompareConfig
}

// NewScanComparerBuilder creates a new builder
func NewScanComparerBuilder(logger zerolog.Logger) *ScanComparerBuilder {
	return &ScanComparerBuilder{
		logger: logger.With().Str("component", "ScanComparer").Logger(),
		config: DefaultCompareConfig(),
	}
}

// WithConfig sets the comparison configuration
func (b *ScanComparerBuilder) WithConfig(config CompareConfig) *ScanComparerBuilder {
	b.config = config
	return b
}

// Build creates a new ScanComparer instance
func (b *ScanComparerBuilder) Build() *ScanComparer {
	return &ScanComparer{
		keywordComparer: NewKeywordComparer(b.config, b.logger),
		logger:          b.logger,
		config:          b.config,
	}
}

// NewScanComparer creates a new ScanComparer instance using builder pattern
func NewScanComparer(logger zerolog.Logger) *ScanComparer {
	return NewScanComparerBuilder(logger).Build()
}

// validateInputs rejects structurally invalid scans before any output is
// produced. A scan with no keywords must carry an empty collection, not nil.
// A nil previous scan is NOT an error: it is the expected first-scan case.
func (sc *ScanComparer) validateInputs(currentScan, previousScan *models.Scan) error {
	if currentScan == nil {
		return errorwrapper.NewValidationError("current_scan", currentScan, "current scan cannot be nil")
	}
	if currentScan.ID == "" {
		return errorwrapper.NewValidationError("current_scan.id", currentScan.ID, "scan id cannot be empty")
	}
	if currentScan.Keywords == nil {
		return errorwrapper.NewValidationError("current_scan.keywords", nil, "keywords collection cannot be nil")
	}
	if previousScan != nil && previousScan.Keywords == nil {
		return errorwrapper.NewValidationError("previous_scan.keywords", nil, "keywords collection cannot be nil")
	}
	return nil
}

// Compare performs the scan diffing logic. With a nil previous scan every
// keyword and link is marked new (bootstrap case); otherwise keywords are
// matched by exact string, diffed per keyword, and keywords present only in
// the previous scan are emitted as disappeared. Comparisons are ordered
// current-scan entries first (in current keyword order) followed by
// disappeared entries (in previous keyword order).
func (sc *ScanComparer) Compare(currentScan, previousScan *models.Scan) (*models.ComparisonResult, error) {
	if err := sc.validateInputs(currentScan, previousScan); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to validate scan comparer inputs")
	}

	if previousScan == nil {
		sc.logger.Info().
			Str("scan_id", currentScan.ID).
			Int("keywords", len(currentScan.Keywords)).
			Msg("No previous scan, marking everything as new")
		return sc.markAllAsNew(currentScan), nil
	}

	sc.logger.Info().
		Str("scan_id", currentScan.ID).
		Str("previous_scan_id", previousScan.ID).
		Int("current_keywords", len(currentScan.Keywords)).
		Int("previous_keywords", len(previousScan.Keywords)).
		Msg("Starting scan comparison")

	comparisons := make([]models.KeywordComparison, 0, len(currentScan.Keywords))

	for i := range currentScan.Keywords {
		currentGroup := &currentScan.Keywords[i]
		previousGroup := previousScan.KeywordGroupByName(currentGroup.Keyword)
		comparisons = append(comparisons, sc.keywordComparer.Compare(currentGroup, previousGroup))
	}

	for i := range previousScan.Keywords {
		previousGroup := &previousScan.Keywords[i]
		if currentScan.KeywordGroupByName(previousGroup.Keyword) == nil {
			comparisons = append(comparisons, sc.keywordComparer.Disappeared(previousGroup))
		}
	}

	result := sc.assembleResult(currentScan.ID, previousScan.ID, len(currentScan.Keywords), comparisons)

	sc.logger.Info().
		Str("scan_id", currentScan.ID).
		Int("new_keywords", result.NewKeywords).
		Int("disappeared_keywords", result.DisappearedKeywords).
		Int("improved_keywords", result.ImprovedKeywords).
		Int("dropped_keywords", result.DroppedKeywords).
		Int("stable_keywords", result.StableKeywords).
		Msg("Scan comparison completed")

	return result, nil
}

// markAllAsNew handles the bootstrap case: the very first scan for a
// client+region has nothing to diff against, so every keyword and every link
// inside it is new. Callers should present this as "no comparison available",
// never as an error.
func (sc *ScanComparer) markAllAsNew(scan *models.Scan) *models.ComparisonResult {
	comparisons := make([]models.KeywordComparison, 0, len(scan.Keywords))
	for i := range scan.Keywords {
		comparisons = append(comparisons, sc.keywordComparer.Compare(&scan.Keywords[i], nil))
	}

	return &models.ComparisonResult{
		ScanID:         scan.ID,
		ComparisonDate: time.Now().UTC(),
		TotalKeywords:  len(scan.Keywords),
		NewKeywords:    len(scan.Keywords),
		Comparisons:    comparisons,
	}
}

// assembleResult computes the aggregate counters in a single pass over the
// assembled comparisons. New and disappeared keywords carry a nil change and
// therefore never count toward improved/dropped/stable.
func (sc *ScanComparer) assembleResult(scanID, previousScanID string, totalKeywords int, comparisons []models.KeywordComparison) *models.ComparisonResult {
	result := &models.ComparisonResult{
		ScanID:         scanID,
		PreviousScanID: previousScanID,
		ComparisonDate: time.Now().UTC(),
		TotalKeywords:  totalKeywords,
		Comparisons:    comparisons,
	}

	for i := range comparisons {
		switch comparisons[i].Type {
		case models.MovementNew:
			result.NewKeywords++
		case models.MovementDisappeared:
			result.DisappearedKeywords++
		}

		if change := comparisons[i].Change; change != nil {
			switch {
			case *change < 0:
				result.ImprovedKeywords++
			case *change > 0:
				result.DroppedKeywords++
			default:
				result.StableKeywords++
			}
		}
	}

	return result
}
