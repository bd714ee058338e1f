package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"reputrack/internal/config"
	"reputrack/internal/errorwrapper"
	"reputrack/internal/orchestrator"

	"github.com/rs/zerolog"
)

// DefaultRetryDelay is the wait between failed scan attempts within one cycle.
const DefaultRetryDelay = 30 * time.Second

// ScanRunner executes one full scan cycle.
type ScanRunner interface {
	ExecuteScan(ctx context.Context) (*orchestrator.ScanOutcome, error)
}

// Scheduler runs scan cycles on a fixed interval in automated mode.
type Scheduler struct {
	cfg        config.SchedulerConfig
	db         *HistoryDB
	runner     ScanRunner
	logger     zerolog.Logger
	retryDelay time.Duration
	stopChan   chan struct{}
	wg         sync.WaitGroup
	isRunning  bool
	isStopped  bool
	mu         sync.Mutex
	stopOnce   sync.Once
}

// NewScheduler creates a new Scheduler instance backed by a scan history database.
func NewScheduler(cfg config.SchedulerConfig, runner ScanRunner, logger zerolog.Logger) (*Scheduler, error) {
	schedulerLogger := logger.With().Str("module", "Scheduler").Logger()

	if runner == nil {
		return nil, errorwrapper.NewValidationError("runner", nil, "scan runner cannot be nil")
	}
	if cfg.SQLiteDBPath == "" {
		return nil, errorwrapper.NewValidationError("sqlite_db_path", "", "sqlite_db_path is required for scheduler")
	}

	db, err := NewHistoryDB(cfg.SQLiteDBPath, schedulerLogger)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to initialize scheduler database")
	}

	return &Scheduler{
		cfg:        cfg,
		db:         db,
		runner:     runner,
		logger:     schedulerLogger,
		retryDelay: DefaultRetryDelay,
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins the scheduler's main loop. It blocks until the context is
// cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.setRunningState(true) {
		return fmt.Errorf("scheduler is already running")
	}
	defer s.setRunningState(false)

	if s.cfg.CycleMinutes <= 0 {
		return fmt.Errorf("invalid cycle minutes: %d", s.cfg.CycleMinutes)
	}

	s.wg.Add(1)
	go s.runCycles(ctx)

	s.wg.Wait()
	return s.checkContextError(ctx)
}

// Stop gracefully stops the scheduler and closes the history database.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info().Msg("Stopping scheduler...")

		s.mu.Lock()
		s.isStopped = true
		s.mu.Unlock()

		close(s.stopChan)
		s.wg.Wait()

		if err := s.db.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Error closing scheduler database")
		}

		s.logger.Info().Msg("Scheduler stopped")
	})
}

func (s *Scheduler) setRunningState(running bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStopped {
		return false
	}
	if running && s.isRunning {
		return false
	}
	s.isRunning = running
	return true
}

func (s *Scheduler) checkContextError(ctx context.Context) error {
	if ctx.Err() != nil && !errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return nil
}

// runCycles executes the scan cycle loop.
func (s *Scheduler) runCycles(ctx context.Context) {
	defer s.wg.Done()

	if s.cfg.RunOnStartup {
		if s.shouldStop(ctx) {
			return
		}
		s.executeCycleWithRetries(ctx)
	}

	for {
		if interrupted := s.waitForNextCycle(ctx); interrupted {
			return
		}
		if s.shouldStop(ctx) {
			return
		}
		s.executeCycleWithRetries(ctx)
	}
}

func (s *Scheduler) shouldStop(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("Context cancelled, stopping scan cycles")
		return true
	case <-s.stopChan:
		s.logger.Info().Msg("Stop signal received, stopping scan cycles")
		return true
	default:
		return false
	}
}

// waitForNextCycle sleeps until the next cycle is due.
func (s *Scheduler) waitForNextCycle(ctx context.Context) (interrupted bool) {
	cycleDuration := time.Duration(s.cfg.CycleMinutes) * time.Minute
	nextScanTime := time.Now().Add(cycleDuration)

	s.logger.Info().
		Time("next_scan", nextScanTime).
		Dur("wait_duration", cycleDuration).
		Msg("Waiting for next scan cycle")

	select {
	case <-time.After(cycleDuration):
		return false
	case <-ctx.Done():
		return true
	case <-s.stopChan:
		return true
	}
}

// executeCycleWithRetries runs one scan cycle, retrying failed attempts up to
// the configured limit.
func (s *Scheduler) executeCycleWithRetries(ctx context.Context) {
	maxRetries := s.cfg.RetryAttempts

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if s.cancelledDuringRetryDelay(ctx) {
				return
			}
		}

		err := s.executeCycle(ctx)
		if err == nil {
			return
		}
		if s.isContextCancellationError(err) {
			s.logger.Info().Msg("Scan cycle interrupted")
			return
		}

		s.logger.Error().Err(err).Int("attempt", attempt+1).Msg("Scan cycle failed")
		if attempt == maxRetries {
			s.logger.Error().Int("attempts", maxRetries+1).Msg("All retry attempts exhausted")
		}
	}
}

func (s *Scheduler) cancelledDuringRetryDelay(ctx context.Context) bool {
	select {
	case <-time.After(s.retryDelay):
		return false
	case <-ctx.Done():
		s.logger.Info().Msg("Context cancelled during retry delay")
		return true
	case <-s.stopChan:
		return true
	}
}

// executeCycle runs a single scan cycle and records it in the history database.
func (s *Scheduler) executeCycle(ctx context.Context) error {
	startTime := time.Now().UTC()

	outcome, err := s.runner.ExecuteScan(ctx)
	if err != nil {
		s.recordFailedCycle(startTime, err)
		return err
	}

	dbScanID, err := s.db.RecordScanStart(
		outcome.Scan.ID,
		outcome.Scan.ClientID,
		outcome.Scan.Region,
		len(outcome.Scan.Keywords),
		startTime,
	)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to record scan start in history")
	}

	if err := s.db.UpdateScanCompletion(
		dbScanID,
		time.Now().UTC(),
		"COMPLETED",
		s.buildLogSummary(outcome),
		s.pickReportPath(outcome),
		outcome.Comparison,
	); err != nil {
		return errorwrapper.WrapError(err, "failed to record scan completion in history")
	}

	s.logger.Info().
		Str("scan_id", outcome.Scan.ID).
		Int("score", outcome.Score.Score).
		Str("rating", string(outcome.Score.Rating)).
		Msg("Scan cycle completed")
	return nil
}

// recordFailedCycle writes a best-effort failure record. The scan id may be
// unknown when collection failed before the scan was created.
func (s *Scheduler) recordFailedCycle(startTime time.Time, cause error) {
	failID := fmt.Sprintf("failed-%d", startTime.UnixNano())
	dbScanID, err := s.db.RecordScanStart(failID, "", "", 0, startTime)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to record failed cycle start in history")
		return
	}
	if err := s.db.UpdateScanCompletion(dbScanID, time.Now().UTC(), "FAILED", cause.Error(), "", nil); err != nil {
		s.logger.Error().Err(err).Msg("Failed to record failed cycle completion in history")
	}
}

func (s *Scheduler) isContextCancellationError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (s *Scheduler) buildLogSummary(outcome *orchestrator.ScanOutcome) string {
	summary := fmt.Sprintf("Keywords: %d, Score: %d (%s)",
		len(outcome.Scan.Keywords), outcome.Score.Score, outcome.Score.Rating)
	if outcome.Comparison.PreviousScanID == "" {
		summary += ", first scan"
	}
	return summary
}

func (s *Scheduler) pickReportPath(outcome *orchestrator.ScanOutcome) string {
	if path, ok := outcome.ReportPaths["html"]; ok {
		return path
	}
	return outcome.ReportPaths["json"]
}
