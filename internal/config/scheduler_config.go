package config

// SchedulerConfig defines configuration for the periodic scan scheduler
type SchedulerConfig struct {
	CycleMinutes  int    `json:"cycle_minutes,omitempty" yaml:"cycle_minutes,omitempty" validate:"min=1"`
	RetryAttempts int    `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty" validate:"min=0"`
	RunOnStartup  bool   `json:"run_on_startup,omitempty" yaml:"run_on_startup,omitempty"`
	SQLiteDBPath  string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty" validate:"required"`
}

// NewDefaultSchedulerConfig creates default scheduler configuration
func NewDefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		CycleMinutes:  DefaultSchedulerCycleMinutes,
		RetryAttempts: DefaultSchedulerRetryAttempts,
		RunOnStartup:  true,
		SQLiteDBPath:  DefaultSchedulerSQLiteDBPath,
	}
}
