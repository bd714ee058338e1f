package config

// SentimentConfig defines configuration for the LLM sentiment classifier
type SentimentConfig struct {
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL     string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	Model       string `json:"model,omitempty" yaml:"model,omitempty"`
	TimeoutSecs int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
	BatchSize   int    `json:"batch_size,omitempty" yaml:"batch_size,omitempty" validate:"min=1"`
}

// NewDefaultSentimentConfig creates default sentiment classifier configuration
func NewDefaultSentimentConfig() SentimentConfig {
	return SentimentConfig{
		BaseURL:     DefaultSentimentBaseURL,
		Model:       DefaultSentimentModel,
		TimeoutSecs: DefaultSentimentTimeoutSecs,
		BatchSize:   DefaultSentimentBatchSize,
	}
}
