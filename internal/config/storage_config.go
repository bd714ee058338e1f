package config

// StorageConfig defines configuration for scan persistence
type StorageConfig struct {
	SQLiteDBPath       string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty" validate:"required"`
	ParquetArchivePath string `json:"parquet_archive_path,omitempty" yaml:"parquet_archive_path,omitempty"`
	ArchiveResults     bool   `json:"archive_results,omitempty" yaml:"archive_results,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		SQLiteDBPath:       DefaultSQLiteDBPath,
		ParquetArchivePath: DefaultParquetArchivePath,
		ArchiveResults:     true,
	}
}
