package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	if cfg.Mode != "onetime" {
		t.Errorf("expected default mode onetime, got %s", cfg.Mode)
	}
	if cfg.ScanConfig.Region != DefaultRegion {
		t.Errorf("expected default region %s, got %s", DefaultRegion, cfg.ScanConfig.Region)
	}
	if cfg.SearchConfig.BaseURL != DefaultSearchBaseURL {
		t.Errorf("unexpected search base URL: %s", cfg.SearchConfig.BaseURL)
	}
	if !cfg.DiffConfig.EnableTitleDiff {
		t.Errorf("expected title diff enabled by default")
	}
}

func TestLoadGlobalConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
mode: scheduled
scan_config:
  client_id: client-42
  client_name: Acme Corp
  region: UK
  keywords:
    - acme corp
    - acme corp reviews
scheduler_config:
  cycle_minutes: 60
  sqlite_db_path: ` + filepath.Join(dir, "history.db") + `
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("LoadGlobalConfig failed: %v", err)
	}

	if cfg.Mode != "scheduled" {
		t.Errorf("expected mode scheduled, got %s", cfg.Mode)
	}
	if cfg.ScanConfig.ClientID != "client-42" {
		t.Errorf("expected client-42, got %s", cfg.ScanConfig.ClientID)
	}
	if cfg.ScanConfig.Region != "UK" {
		t.Errorf("expected region UK, got %s", cfg.ScanConfig.Region)
	}
	if len(cfg.ScanConfig.Keywords) != 2 {
		t.Errorf("expected 2 keywords, got %d", len(cfg.ScanConfig.Keywords))
	}
	if cfg.SchedulerConfig.CycleMinutes != 60 {
		t.Errorf("expected cycle 60, got %d", cfg.SchedulerConfig.CycleMinutes)
	}
	// Untouched sections keep defaults.
	if cfg.SearchConfig.RequestDelayMs != DefaultSearchRequestDelayMs {
		t.Errorf("expected default request delay, got %d", cfg.SearchConfig.RequestDelayMs)
	}
}

func TestLoadGlobalConfig_InvalidMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("mode: sideways\n"), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	if _, err := LoadGlobalConfig(path); err == nil {
		t.Fatalf("expected validation error for invalid mode")
	}
}

func TestValidateConfig_BadRegion(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.ScanConfig.Region = "XX"

	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected validation error for unsupported region")
	}
}
