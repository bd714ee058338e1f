package config

// Default values for logging configuration
const (
	DefaultLogFile       = "logs/reputrack.log"
	DefaultLogFormat     = "console"
	DefaultLogLevel      = "info"
	DefaultMaxLogBackups = 3
	DefaultMaxLogSizeMB  = 100
)

// Default values for scan configuration
const (
	DefaultRegion            = "US"
	DefaultResultsPerKeyword = 20
	MaxResultsPerKeyword     = 100
)

// Default values for search provider configuration
const (
	DefaultSearchBaseURL        = "https://customsearch.googleapis.com/customsearch/v1"
	DefaultSearchRequestDelayMs = 2000
	DefaultSearchTimeoutSecs    = 30
	DefaultSearchResultsPerPage = 10
	DefaultSearchMaxRetries     = 2
)

// Default values for sentiment classifier configuration
const (
	DefaultSentimentBaseURL     = "https://api.openai.com/v1/chat/completions"
	DefaultSentimentModel       = "gpt-4"
	DefaultSentimentTimeoutSecs = 60
	DefaultSentimentBatchSize   = 10
)

// Default values for storage configuration
const (
	DefaultSQLiteDBPath       = "data/reputrack.db"
	DefaultParquetArchivePath = "data/archive"
)

// Default values for reporter configuration
const (
	DefaultReportOutputDir = "reports"
)

// Default values for scheduler configuration
const (
	DefaultSchedulerCycleMinutes  = 10080 // weekly
	DefaultSchedulerRetryAttempts = 2
	DefaultSchedulerSQLiteDBPath  = "data/scheduler_history.db"
)
