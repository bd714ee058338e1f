package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"reputrack/internal/config"
	"reputrack/internal/datastore"
	"reputrack/internal/differ"
	"reputrack/internal/logger"
	"reputrack/internal/orchestrator"
	"reputrack/internal/ranking"
	"reputrack/internal/reporter"
	"reputrack/internal/scheduler"
	"reputrack/internal/searcher"
	"reputrack/internal/sentiment"

	"github.com/rs/zerolog"
)

func main() {
	fmt.Println("RepuTrack starting...")

	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	applyFlagOverrides(gCfg, flags)

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().Msg("Logger initialized successfully.")

	// Ensure the reporter output directory exists before validation
	if gCfg.ReporterConfig.OutputDir != "" {
		if err := os.MkdirAll(gCfg.ReporterConfig.OutputDir, 0755); err != nil {
			zLogger.Fatal().Err(err).Str("directory", gCfg.ReporterConfig.OutputDir).Msg("Could not create report output directory")
		}
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	zLogger.Info().Msg("Configuration validated successfully.")

	orch, store := buildScanPipeline(gCfg, zLogger)
	defer func() {
		if err := store.Close(); err != nil {
			zLogger.Error().Err(err).Msg("Error closing scan store")
		}
	}()

	// Signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, initiating graceful shutdown...")
		cancel()
	}()

	if gCfg.Mode == "scheduled" {
		runScheduled(ctx, gCfg, orch, zLogger)
	} else {
		runOnetime(ctx, orch, zLogger)
	}

	if ctx.Err() == context.Canceled {
		zLogger.Info().Msg("Application shutting down due to context cancellation.")
	} else {
		zLogger.Info().Msg("Application finished.")
	}
}

// applyFlagOverrides layers command line flags over the loaded config file.
func applyFlagOverrides(gCfg *config.GlobalConfig, flags AppFlags) {
	if flags.Mode != "" {
		gCfg.Mode = flags.Mode
	}
	if flags.ClientID != "" {
		gCfg.ScanConfig.ClientID = flags.ClientID
	}
	if flags.ClientName != "" {
		gCfg.ScanConfig.ClientName = flags.ClientName
	}
	if flags.Region != "" {
		gCfg.ScanConfig.Region = flags.Region
	}
	if flags.KeywordsFile != "" {
		keywords, err := ReadKeywordsFromFile(flags.KeywordsFile)
		if err != nil {
			log.Fatalf("[FATAL] Main: Could not load keywords from '%s': %v", flags.KeywordsFile, err)
		}
		gCfg.ScanConfig.Keywords = keywords
	}
}

// buildScanPipeline wires the search, sentiment, storage, comparison, scoring
// and reporting components into a scan orchestrator.
func buildScanPipeline(gCfg *config.GlobalConfig, zLogger zerolog.Logger) (*orchestrator.ScanOrchestrator, *datastore.ScanStore) {
	store, err := datastore.NewScanStore(gCfg.StorageConfig.SQLiteDBPath, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize scan store")
	}

	searchClient, err := searcher.NewSearchClient(gCfg.SearchConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize search client")
	}

	classifier, err := sentiment.NewClassifier(gCfg.SentimentConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize sentiment classifier")
	}

	rep, err := reporter.NewReporter(gCfg.ReporterConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize reporter")
	}

	comparer := differ.NewScanComparerBuilder(zLogger).
		WithConfig(differ.CompareConfig{
			EnableTitleDiff:     gCfg.DiffConfig.EnableTitleDiff,
			WarnOnDuplicateURLs: gCfg.DiffConfig.WarnOnDuplicateURLs,
		}).
		Build()

	builder := orchestrator.NewScanOrchestratorBuilder(zLogger).
		WithStore(store).
		WithSearcher(searchClient).
		WithClassifier(classifier).
		WithComparer(comparer).
		WithScorer(ranking.NewScoreEngine(zLogger)).
		WithReporter(rep).
		WithScanConfig(gCfg.ScanConfig)

	if gCfg.StorageConfig.ArchiveResults {
		builder.WithArchive(datastore.NewResultArchive(gCfg.StorageConfig.ParquetArchivePath, zLogger))
	}

	orch, err := builder.Build()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to build scan orchestrator")
	}
	return orch, store
}

// runScheduled runs scan cycles on the configured interval until interrupted.
func runScheduled(ctx context.Context, gCfg *config.GlobalConfig, orch *orchestrator.ScanOrchestrator, zLogger zerolog.Logger) {
	sched, err := scheduler.NewScheduler(gCfg.SchedulerConfig, orch, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	defer sched.Stop()

	zLogger.Info().
		Int("cycle_minutes", gCfg.SchedulerConfig.CycleMinutes).
		Bool("run_on_startup", gCfg.SchedulerConfig.RunOnStartup).
		Msg("Running in scheduled mode...")

	if err := sched.Start(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			zLogger.Info().Msg("Scheduler stopped due to context cancellation (interrupt).")
		} else {
			zLogger.Error().Err(err).Msg("Scheduler error")
		}
	}
	zLogger.Info().Msg("Scheduled mode completed or interrupted.")
}

// runOnetime executes a single scan cycle and logs its outcome.
func runOnetime(ctx context.Context, orch *orchestrator.ScanOrchestrator, zLogger zerolog.Logger) {
	zLogger.Info().Msg("Running in onetime mode...")

	outcome, err := orch.ExecuteScan(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			zLogger.Info().Msg("Onetime scan interrupted.")
			return
		}
		zLogger.Error().Err(err).Msg("Onetime scan failed")
		return
	}

	event := zLogger.Info().
		Str("scan_id", outcome.Scan.ID).
		Int("score", outcome.Score.Score).
		Str("rating", string(outcome.Score.Rating)).
		Int("total_links", outcome.Score.TotalLinks)
	for format, path := range outcome.ReportPaths {
		event = event.Str("report_"+format, path)
	}
	event.Msg("Onetime scan completed")
}
