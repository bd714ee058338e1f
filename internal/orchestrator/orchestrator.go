package orchestrator

import (
	"context"
	"fmt"
	"time"

	"reputrack/internal/config"
	"reputrack/internal/datastore"
	"reputrack/internal/differ"
	"reputrack/internal/errorwrapper"
	"reputrack/internal/models"
	"reputrack/internal/ranking"
	"reputrack/internal/reporter"
	"reputrack/internal/searcher"
	"reputrack/internal/urlhandler"

	"github.com/rs/zerolog"
)

// KeywordSearcher runs one keyword query against the search provider.
type KeywordSearcher interface {
	SearchKeyword(ctx context.Context, query, region string, maxResults int) ([]models.SearchResult, error)
}

// SentimentTagger classifies a batch of search results for a client.
type SentimentTagger interface {
	ClassifyResults(ctx context.Context, results []models.SearchResult, clientName string) ([]models.Sentiment, error)
}

// ScanOutcome bundles everything a completed scan cycle produced.
type ScanOutcome struct {
	Scan        *models.Scan
	Comparison  *models.ComparisonResult
	Score       models.RankingScore
	ReportPaths map[string]string
}

// ScanOrchestrator drives the full scan lifecycle: collect search results,
// tag sentiment, persist, diff against the previous scan, score, and emit
// the report.
type ScanOrchestrator struct {
	store      *datastore.ScanStore
	archive    *datastore.ResultArchive
	search     KeywordSearcher
	classifier SentimentTagger
	comparer   *differ.ScanComparer
	scorer     *ranking.ScoreEngine
	reporter   *reporter.Reporter
	scanConfig config.ScanConfig
	logger     zerolog.Logger
}

// ScanOrchestratorBuilder provides a fluent interface for creating ScanOrchestrator
type ScanOrchestratorBuilder struct {
	orchestrator ScanOrchestrator
}

// NewScanOrchestratorBuilder creates a new builder
func NewScanOrchestratorBuilder(logger zerolog.Logger) *ScanOrchestratorBuilder {
	return &ScanOrchestratorBuilder{
		orchestrator: ScanOrchestrator{
			logger: logger.With().Str("component", "ScanOrchestrator").Logger(),
		},
	}
}

// WithStore sets the scan store
func (b *ScanOrchestratorBuilder) WithStore(store *datastore.ScanStore) *ScanOrchestratorBuilder {
	b.orchestrator.store = store
	return b
}

// WithArchive sets the optional parquet result archive
func (b *ScanOrchestratorBuilder) WithArchive(archive *datastore.ResultArchive) *ScanOrchestratorBuilder {
	b.orchestrator.archive = archive
	return b
}

// WithSearcher sets the keyword searcher
func (b *ScanOrchestratorBuilder) WithSearcher(search KeywordSearcher) *ScanOrchestratorBuilder {
	b.orchestrator.search = search
	return b
}

// WithClassifier sets the sentiment tagger
func (b *ScanOrchestratorBuilder) WithClassifier(classifier SentimentTagger) *ScanOrchestratorBuilder {
	b.orchestrator.classifier = classifier
	return b
}

// WithComparer sets the scan comparer
func (b *ScanOrchestratorBuilder) WithComparer(comparer *differ.ScanComparer) *ScanOrchestratorBuilder {
	b.orchestrator.comparer = comparer
	return b
}

// WithScorer sets the ranking score engine
func (b *ScanOrchestratorBuilder) WithScorer(scorer *ranking.ScoreEngine) *ScanOrchestratorBuilder {
	b.orchestrator.scorer = scorer
	return b
}

// WithReporter sets the report writer
func (b *ScanOrchestratorBuilder) WithReporter(rep *reporter.Reporter) *ScanOrchestratorBuilder {
	b.orchestrator.reporter = rep
	return b
}

// WithScanConfig sets the scan target configuration
func (b *ScanOrchestratorBuilder) WithScanConfig(cfg config.ScanConfig) *ScanOrchestratorBuilder {
	b.orchestrator.scanConfig = cfg
	return b
}

// Build validates wiring and creates the orchestrator
func (b *ScanOrchestratorBuilder) Build() (*ScanOrchestrator, error) {
	o := b.orchestrator
	if o.store == nil {
		return nil, errorwrapper.NewValidationError("store", nil, "scan store cannot be nil")
	}
	if o.search == nil {
		return nil, errorwrapper.NewValidationError("search", nil, "keyword searcher cannot be nil")
	}
	if o.classifier == nil {
		return nil, errorwrapper.NewValidationError("classifier", nil, "sentiment tagger cannot be nil")
	}
	if o.comparer == nil {
		return nil, errorwrapper.NewValidationError("comparer", nil, "scan comparer cannot be nil")
	}
	if o.scorer == nil {
		return nil, errorwrapper.NewValidationError("scorer", nil, "score engine cannot be nil")
	}
	if len(o.scanConfig.Keywords) == 0 {
		return nil, errorwrapper.NewValidationError("scan_config.keywords", nil, "at least one keyword is required")
	}
	return &o, nil
}

// ExecuteScan runs one complete scan cycle and returns its outcome. A scan
// that fails mid-collection is marked failed in the store before the error
// propagates.
func (so *ScanOrchestrator) ExecuteScan(ctx context.Context) (*ScanOutcome, error) {
	scan := so.newScan()

	so.logger.Info().
		Str("scan_id", scan.ID).
		Str("client_id", scan.ClientID).
		Str("region", scan.Region).
		Int("keywords", len(so.scanConfig.Keywords)).
		Msg("Starting scan")

	if err := so.store.CreateScan(scan); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create scan record")
	}
	if err := so.store.UpdateScanStatus(scan.ID, models.ScanStatusRunning); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to mark scan running")
	}

	if err := so.collectResults(ctx, scan); err != nil {
		so.failScan(scan.ID, err)
		return nil, err
	}

	if err := so.store.SaveKeywordGroups(scan.ID, scan.Keywords); err != nil {
		so.failScan(scan.ID, err)
		return nil, errorwrapper.WrapError(err, "failed to persist scan results")
	}
	if err := so.store.UpdateScanStatus(scan.ID, models.ScanStatusCompleted); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to mark scan completed")
	}
	scan.Status = models.ScanStatusCompleted

	if so.archive != nil {
		if _, err := so.archive.ArchiveScan(scan); err != nil {
			// Archival is best-effort; the SQLite store already has the data.
			so.logger.Error().Err(err).Str("scan_id", scan.ID).Msg("Failed to archive scan results")
		}
	}

	return so.compareAndReport(scan)
}

// newScan creates the scan entity with a timestamped session id.
func (so *ScanOrchestrator) newScan() *models.Scan {
	now := time.Now().UTC()
	// Nanosecond suffix keeps ids unique when two scans start in the same second.
	scanID := fmt.Sprintf("scan-%s-%s-%s-%09d",
		urlhandler.SanitizeFilename(so.scanConfig.ClientID),
		urlhandler.SanitizeFilename(so.scanConfig.Region),
		now.Format("20060102-150405"), now.Nanosecond())

	_, week := now.ISOWeek()

	return &models.Scan{
		ID:         scanID,
		ClientID:   so.scanConfig.ClientID,
		ClientName: so.scanConfig.ClientName,
		Region:     so.scanConfig.Region,
		WeekNumber: week,
		Status:     models.ScanStatusPending,
		ScanDate:   now,
		Keywords:   []models.KeywordGroup{},
	}
}

// collectResults runs search and sentiment classification for every keyword
// and attaches the resulting keyword groups to the scan.
func (so *ScanOrchestrator) collectResults(ctx context.Context, scan *models.Scan) error {
	for i, keyword := range so.scanConfig.Keywords {
		query := searcher.BuildQuery(so.scanConfig.ClientName, keyword)

		results, err := so.search.SearchKeyword(ctx, query, scan.Region, so.scanConfig.ResultsPerKeyword)
		if err != nil {
			return errorwrapper.WrapError(err, "search failed for keyword "+keyword)
		}

		sentiments, err := so.classifier.ClassifyResults(ctx, results, so.scanConfig.ClientName)
		if err != nil {
			return errorwrapper.WrapError(err, "sentiment classification failed for keyword "+keyword)
		}
		for j := range results {
			results[j].Keyword = keyword
			results[j].Sentiment = sentiments[j]
		}

		scan.Keywords = append(scan.Keywords, models.KeywordGroup{
			Keyword:  keyword,
			Position: i + 1,
			Links:    results,
		})

		so.logger.Info().
			Str("scan_id", scan.ID).
			Str("keyword", keyword).
			Int("results", len(results)).
			Msg("Keyword collected")
	}
	return nil
}

// compareAndReport resolves the previous scan, diffs, scores, persists the
// counters, and writes the report.
func (so *ScanOrchestrator) compareAndReport(scan *models.Scan) (*ScanOutcome, error) {
	previous, err := so.store.FindPreviousScan(scan.ClientID, scan.Region, scan.ScanDate)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to resolve previous scan")
	}

	comparison, err := so.comparer.Compare(scan, previous)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "scan comparison failed")
	}

	if err := so.store.StoreComparisonCounters(scan.ID, comparison); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to store comparison counters")
	}

	outcome := &ScanOutcome{
		Scan:       scan,
		Comparison: comparison,
		Score:      so.scorer.Score(comparison),
	}

	if so.reporter != nil {
		report := so.scorer.BuildReport(comparison, scan)
		paths, err := so.reporter.WriteReport(&report)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "failed to write comparison report")
		}
		outcome.ReportPaths = paths
	}

	return outcome, nil
}

func (so *ScanOrchestrator) failScan(scanID string, cause error) {
	so.logger.Error().Err(cause).Str("scan_id", scanID).Msg("Scan failed")
	if err := so.store.UpdateScanStatus(scanID, models.ScanStatusFailed); err != nil {
		so.logger.Error().Err(err).Str("scan_id", scanID).Msg("Failed to mark scan as failed")
	}
}
