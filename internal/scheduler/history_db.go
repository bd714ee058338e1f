package scheduler

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reputrack/internal/models"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// HistoryDB wraps the SQL database connection and provides methods for
// recording scan cycle history.
type HistoryDB struct {
	db     *sql.DB
	logger zerolog.Logger
}

// ScanHistoryEntry represents a record in the scan_history table.
type ScanHistoryEntry struct {
	ID         int64
	ScanID     string
	ClientID   string
	Region     string
	Keywords   int
	StartTime  time.Time
	EndTime    sql.NullInt64
	Status     string
	LogSummary sql.NullString
	ReportPath sql.NullString
}

// NewHistoryDB initializes a new HistoryDB connection and ensures the schema is set up.
func NewHistoryDB(dataSourceName string, logger zerolog.Logger) (*HistoryDB, error) {
	logger.Info().Str("db_path", dataSourceName).Msg("Initializing scheduler database connection")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create scheduler database directory")
		return nil, fmt.Errorf("failed to create scheduler database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open scheduler database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	db := &HistoryDB{
		db:     dbInstance,
		logger: logger,
	}

	if err := db.initSchema(); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("Failed to initialize scheduler database schema")
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (d *HistoryDB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *HistoryDB) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS scan_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scan_id TEXT UNIQUE,
		client_id TEXT NOT NULL,
		region TEXT NOT NULL,
		num_keywords INTEGER,
		start_time INTEGER NOT NULL,
		end_time INTEGER,
		status TEXT NOT NULL,
		log_summary TEXT,
		report_file_path TEXT,
		new_links INTEGER DEFAULT 0,
		disappeared_links INTEGER DEFAULT 0,
		improved_links INTEGER DEFAULT 0,
		dropped_links INTEGER DEFAULT 0,
		stable_links INTEGER DEFAULT 0
	);
	`
	if _, err := d.db.Exec(query); err != nil {
		d.logger.Error().Err(err).Msg("Failed to initialize scan_history schema")
		return err
	}
	return nil
}

// RecordScanStart inserts a new record into scan_history with status "STARTED"
// and returns the ID of the newly inserted row.
func (d *HistoryDB) RecordScanStart(scanID, clientID, region string, numKeywords int, startTime time.Time) (int64, error) {
	query := `INSERT INTO scan_history (scan_id, client_id, region, num_keywords, start_time, status) VALUES (?, ?, ?, ?, ?, ?)`
	result, err := d.db.Exec(query, scanID, clientID, region, numKeywords, startTime.UnixNano(), "STARTED")
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan start record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	d.logger.Info().Int64("db_id", id).Str("scan_id", scanID).Msg("Recorded scan start")
	return id, nil
}

// UpdateScanCompletion updates an existing scan_history record with completion
// details. The comparison may be nil when the cycle failed before comparing.
func (d *HistoryDB) UpdateScanCompletion(dbScanID int64, endTime time.Time, status, logSummary, reportPath string, comparison *models.ComparisonResult) error {
	var newLinks, disappeared, improved, dropped, stable int
	if comparison != nil {
		newLinks = comparison.NewKeywords
		disappeared = comparison.DisappearedKeywords
		improved = comparison.ImprovedKeywords
		dropped = comparison.DroppedKeywords
		stable = comparison.StableKeywords
	}

	query := `UPDATE scan_history SET end_time = ?, status = ?, log_summary = ?, report_file_path = ?, new_links = ?, disappeared_links = ?, improved_links = ?, dropped_links = ?, stable_links = ? WHERE id = ?`
	_, err := d.db.Exec(query,
		endTime.UnixNano(),
		status,
		sql.NullString{String: logSummary, Valid: logSummary != ""},
		sql.NullString{String: reportPath, Valid: reportPath != ""},
		newLinks, disappeared, improved, dropped, stable,
		dbScanID,
	)
	if err != nil {
		return fmt.Errorf("failed to update scan completion for ID %d: %w", dbScanID, err)
	}
	d.logger.Info().Int64("db_id", dbScanID).Str("status", status).Msg("Updated scan completion")
	return nil
}

// LastCompletedScanTime retrieves the start_time of the most recent completed
// cycle. Returns nil without error when no cycle has completed yet.
func (d *HistoryDB) LastCompletedScanTime() (*time.Time, error) {
	query := `SELECT start_time FROM scan_history WHERE status = ? ORDER BY start_time DESC LIMIT 1`
	var startNanos int64
	err := d.db.QueryRow(query, "COMPLETED").Scan(&startNanos)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last scan start time: %w", err)
	}

	startTime := time.Unix(0, startNanos).UTC()
	return &startTime, nil
}
