package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"reputrack/internal/errorwrapper"

	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	Mode            string          `json:"mode,omitempty" yaml:"mode,omitempty" validate:"required,mode"`
	LogConfig       LogConfig       `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	ScanConfig      ScanConfig      `json:"scan_config,omitempty" yaml:"scan_config,omitempty"`
	SearchConfig    SearchConfig    `json:"search_config,omitempty" yaml:"search_config,omitempty"`
	SentimentConfig SentimentConfig `json:"sentiment_config,omitempty" yaml:"sentiment_config,omitempty"`
	DiffConfig      DiffConfig      `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	StorageConfig   StorageConfig   `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	ReporterConfig  ReporterConfig  `json:"reporter_config,omitempty" yaml:"reporter_config,omitempty"`
	SchedulerConfig SchedulerConfig `json:"scheduler_config,omitempty" yaml:"scheduler_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Mode:            "onetime",
		LogConfig:       NewDefaultLogConfig(),
		ScanConfig:      NewDefaultScanConfig(),
		SearchConfig:    NewDefaultSearchConfig(),
		SentimentConfig: NewDefaultSentimentConfig(),
		DiffConfig:      NewDefaultDiffConfig(),
		StorageConfig:   NewDefaultStorageConfig(),
		ReporterConfig:  NewDefaultReporterConfig(),
		SchedulerConfig: NewDefaultSchedulerConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath and supports both
// YAML and JSON formats. Values not present in the file keep their defaults.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	configPath := GetConfigPath(providedPath)
	if configPath == "" {
		// No config file found anywhere: run on defaults plus environment.
		cfg.applyEnvironmentOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file "+configPath)
	}

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse YAML config "+configPath)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse JSON config "+configPath)
		}
	default:
		// Try YAML first, fall back to JSON.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
				return nil, errorwrapper.WrapError(err, "failed to parse config "+configPath)
			}
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := ValidateConfig(cfg); err != nil {
		return nil, errorwrapper.WrapError(err, "config validation failed for "+configPath)
	}

	return cfg, nil
}

// applyEnvironmentOverrides fills API credentials from the environment when
// the config file leaves them empty, so secrets can stay out of the file.
func (cfg *GlobalConfig) applyEnvironmentOverrides() {
	if cfg.SearchConfig.APIKey == "" {
		cfg.SearchConfig.APIKey = firstEnv("GOOGLE_API_KEY", "GOOGLE_SEARCH_API_KEY")
	}
	if cfg.SearchConfig.SearchEngineID == "" {
		cfg.SearchConfig.SearchEngineID = os.Getenv("GOOGLE_SEARCH_ENGINE_ID")
	}
	if cfg.SentimentConfig.APIKey == "" {
		cfg.SentimentConfig.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
