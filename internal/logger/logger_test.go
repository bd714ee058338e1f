package logger

import (
	"os"
	"path/filepath"
	"testing"

	"reputrack/internal/config"
)

func TestNew_DefaultConfig(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = "" // console only for the test

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	log.Info().Msg("logger smoke test")
}

func TestBuilder_WithScanID_CreatesScanSubdir(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(dir, "reputrack.log")
	cfg.LogFormat = "json"

	log, err := NewLoggerBuilder().WithConfig(cfg).WithScanID("scan-20260828-120000").Build()
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	log.Info().Msg("scan-scoped event")

	scanDir := filepath.Join(dir, "scans", "scan-20260828-120000")
	if _, err := os.Stat(scanDir); err != nil {
		t.Errorf("expected scan log directory %s to exist: %v", scanDir, err)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug").String() != "debug" {
		t.Errorf("expected debug level")
	}
	if parseLevel("nonsense").String() != "info" {
		t.Errorf("expected fallback to info level")
	}
}
