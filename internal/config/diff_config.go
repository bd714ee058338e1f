package config

// DiffConfig defines configuration for scan comparison
type DiffConfig struct {
	EnableTitleDiff     bool `json:"enable_title_diff,omitempty" yaml:"enable_title_diff,omitempty"`
	WarnOnDuplicateURLs bool `json:"warn_on_duplicate_urls,omitempty" yaml:"warn_on_duplicate_urls,omitempty"`
}

// NewDefaultDiffConfig creates default comparison configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		EnableTitleDiff:     true,
		WarnOnDuplicateURLs: true,
	}
}
