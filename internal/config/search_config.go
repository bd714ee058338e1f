package config

// SearchConfig defines configuration for the search provider API client
type SearchConfig struct {
	APIKey         string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	SearchEngineID string `json:"search_engine_id,omitempty" yaml:"search_engine_id,omitempty"`
	BaseURL        string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	RequestDelayMs int    `json:"request_delay_ms,omitempty" yaml:"request_delay_ms,omitempty" validate:"min=0"`
	TimeoutSecs    int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
	MaxRetries     int    `json:"max_retries,omitempty" yaml:"max_retries,omitempty" validate:"min=0"`
}

// NewDefaultSearchConfig creates default search provider configuration
func NewDefaultSearchConfig() SearchConfig {
	return SearchConfig{
		BaseURL:        DefaultSearchBaseURL,
		RequestDelayMs: DefaultSearchRequestDelayMs,
		TimeoutSecs:    DefaultSearchTimeoutSecs,
		MaxRetries:     DefaultSearchMaxRetries,
	}
}
