package datastore

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

// ScanStore persists scans and their search results in SQLite and resolves
// the "previous scan" linkage: the most recent prior completed scan for the
// same client and region.
type ScanStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewScanStore initializes the store and ensures the schema is set up.
func NewScanStore(dataSourceName string, logger zerolog.Logger) (*ScanStore, error) {
	logger = logger.With().Str("component", "ScanStore").Logger()
	logger.Info().Str("db_path", dataSourceName).Msg("Initializing scan store")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scan store directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	store := &ScanStore{
		db:     dbInstance,
		logger: logger,
	}

	if err := store.initSchema(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize scan store schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *ScanStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *ScanStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS scans (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		client_name TEXT,
		region TEXT NOT NULL,
		week_number INTEGER DEFAULT 0,
		status TEXT NOT NULL,
		scan_date INTEGER NOT NULL,
		completed_at INTEGER,
		total_keywords INTEGER DEFAULT 0,
		new_keywords INTEGER DEFAULT 0,
		disappeared_keywords INTEGER DEFAULT 0,
		improved_keywords INTEGER DEFAULT 0,
		dropped_keywords INTEGER DEFAULT 0,
		stable_keywords INTEGER DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS search_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scan_id TEXT NOT NULL REFERENCES scans(id),
		keyword TEXT NOT NULL,
		keyword_position INTEGER NOT NULL,
		url TEXT NOT NULL,
		title TEXT,
		snippet TEXT,
		position INTEGER NOT NULL,
		sentiment TEXT NOT NULL,
		domain TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_scans_client_region ON scans(client_id, region, scan_date);
	CREATE INDEX IF NOT EXISTS idx_results_scan ON search_results(scan_id);
	`
	if _, err := s.db.Exec(query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	return nil
}

// CreateScan inserts a new scan record.
func (s *ScanStore) CreateScan(scan *models.Scan) error {
	query := `INSERT INTO scans (id, client_id, client_name, region, week_number, status, scan_date) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, scan.ID, scan.ClientID, scan.ClientName, scan.Region, scan.WeekNumber, string(scan.Status), scan.ScanDate.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert scan %s: %w", scan.ID, err)
	}
	s.logger.Info().Str("scan_id", scan.ID).Str("client_id", scan.ClientID).Str("region", scan.Region).Msg("Scan created")
	return nil
}

// UpdateScanStatus transitions a scan's lifecycle state. A transition to
// completed also records the completion time.
func (s *ScanStore) UpdateScanStatus(scanID string, status models.ScanStatus) error {
	var err error
	if status == models.ScanStatusCompleted {
		_, err = s.db.Exec(`UPDATE scans SET status = ?, completed_at = ? WHERE id = ?`, string(status), time.Now().UTC().UnixNano(), scanID)
	} else {
		_, err = s.db.Exec(`UPDATE scans SET status = ? WHERE id = ?`, string(status), scanID)
	}
	if err != nil {
		return fmt.Errorf("failed to update scan %s status to %s: %w", scanID, status, err)
	}
	return nil
}

// SaveKeywordGroups attaches the collected keyword groups to a scan in one
// transaction.
func (s *ScanStore) SaveKeywordGroups(scanID string, groups []models.KeywordGroup) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO search_results (scan_id, keyword, keyword_position, url, title, snippet, position, sentiment, domain) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	total := 0
	for gi := range groups {
		group := &groups[gi]
		for li := range group.Links {
			link := &group.Links[li]
			if _, err := stmt.Exec(scanID, group.Keyword, group.Position, link.URL, link.Title, link.Snippet, link.Position, string(link.Sentiment), link.Domain); err != nil {
				return fmt.Errorf("failed to insert result for keyword %s: %w", group.Keyword, err)
			}
			total++
		}
	}

	if _, err := tx.Exec(`UPDATE scans SET total_keywords = ? WHERE id = ?`, len(groups), scanID); err != nil {
		return fmt.Errorf("failed to update keyword count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}

	s.logger.Info().Str("scan_id", scanID).Int("keywords", len(groups)).Int("results", total).Msg("Keyword groups saved")
	return nil
}

// LoadScan reassembles a scan with its keyword groups in insertion order.
// Returns nil without error when the scan does not exist.
func (s *ScanStore) LoadScan(scanID string) (*models.Scan, error) {
	scan, err := s.scanRow(`SELECT id, client_id, client_name, region, week_number, status, scan_date, completed_at FROM scans WHERE id = ?`, scanID)
	if err != nil || scan == nil {
		return scan, err
	}

	if err := s.attachResults(scan); err != nil {
		return nil, err
	}
	return scan, nil
}

// FindPreviousScan returns the most recent completed scan for the client and
// region strictly before the given time, with its results attached. Returns
// nil without error when no previous scan exists: the caller treats that as
// the bootstrap case, not a failure.
func (s *ScanStore) FindPreviousScan(clientID, region string, before time.Time) (*models.Scan, error) {
	scan, err := s.scanRow(
		`SELECT id, client_id, client_name, region, week_number, status, scan_date, completed_at
		 FROM scans
		 WHERE client_id = ? AND region = ? AND status = ? AND scan_date < ?
		 ORDER BY scan_date DESC LIMIT 1`,
		clientID, region, string(models.ScanStatusCompleted), before.UnixNano(),
	)
	if err != nil || scan == nil {
		return scan, err
	}

	if err := s.attachResults(scan); err != nil {
		return nil, err
	}
	return scan, nil
}

// StoreComparisonCounters writes the movement counters of a finished
// comparison back onto the scan row for dashboard queries.
func (s *ScanStore) StoreComparisonCounters(scanID string, result *models.ComparisonResult) error {
	query := `UPDATE scans SET new_keywords = ?, disappeared_keywords = ?, improved_keywords = ?, dropped_keywords = ?, stable_keywords = ? WHERE id = ?`
	_, err := s.db.Exec(query, result.NewKeywords, result.DisappearedKeywords, result.ImprovedKeywords, result.DroppedKeywords, result.StableKeywords, scanID)
	if err != nil {
		return fmt.Errorf("failed to store comparison counters for scan %s: %w", scanID, err)
	}
	return nil
}

func (s *ScanStore) scanRow(query string, args ...any) (*models.Scan, error) {
	row := s.db.QueryRow(query, args...)

	var scan models.Scan
	var status string
	var scanDate int64
	var completedAt sql.NullInt64

	err := row.Scan(&scan.ID, &scan.ClientID, &scan.ClientName, &scan.Region, &scan.WeekNumber, &status, &scanDate, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scan row: %w", err)
	}

	scan.Status = models.ScanStatus(status)
	scan.ScanDate = time.Unix(0, scanDate).UTC()
	if completedAt.Valid {
		scan.CompletedAt = time.Unix(0, completedAt.Int64).UTC()
	}
	return &scan, nil
}

// attachResults loads search_results rows and groups them by keyword,
// preserving keyword order (by keyword_position) and link order (by row id,
// which follows search-engine rank order at insert time).
func (s *ScanStore) attachResults(scan *models.Scan) error {
	rows, err := s.db.Query(
		`SELECT keyword, keyword_position, url, title, snippet, position, sentiment, domain
		 FROM search_results WHERE scan_id = ? ORDER BY keyword_position, id`,
		scan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query results for scan %s: %w", scan.ID, err)
	}
	defer rows.Close()

	scan.Keywords = []models.KeywordGroup{}
	groupIndex := map[string]int{}

	for rows.Next() {
		var keyword, url, title, snippet, sentiment, domain string
		var keywordPosition, position int
		if err := rows.Scan(&keyword, &keywordPosition, &url, &title, &snippet, &position, &sentiment, &domain); err != nil {
			return fmt.Errorf("failed to read result row: %w", err)
		}

		idx, exists := groupIndex[keyword]
		if !exists {
			scan.Keywords = append(scan.Keywords, models.KeywordGroup{Keyword: keyword, Position: keywordPosition})
			idx = len(scan.Keywords) - 1
			groupIndex[keyword] = idx
		}

		scan.Keywords[idx].Links = append(scan.Keywords[idx].Links, models.SearchResult{
			Keyword:   keyword,
			URL:       url,
			Title:     title,
			Snippet:   snippet,
			Position:  position,
			Sentiment: models.Sentiment(sentiment),
			Domain:    domain,
		})
	}
	return rows.Err()
}
