package datastore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"reputrack/internal/models"
	"reputrack/internal/urlhandler"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ParquetSearchResult defines the flat schema for archiving sentiment-tagged
// search results. One file is written per completed scan, under a per-client
// directory, for long-term trend analysis outside the SQLite store.
type ParquetSearchResult struct {
	ScanID        string `parquet:"scan_id"`
	ClientID      string `parquet:"client_id"`
	Region        string `parquet:"region"`
	Keyword       string `parquet:"keyword"`
	URL           string `parquet:"url"`
	NormalizedURL string `parquet:"normalized_url"`
	Title         string `parquet:"title,optional"`
	Position      int32  `parquet:"position"`
	Sentiment     string `parquet:"sentiment"`
	Domain        string `parquet:"domain,optional"`
	ScanTimestamp int64  `parquet:"scan_timestamp"`
}

// ResultArchive writes and reads per-scan Parquet archive files.
type ResultArchive struct {
	baseDir string
	logger  zerolog.Logger
}

// NewResultArchive creates a new archive rooted at baseDir.
func NewResultArchive(baseDir string, logger zerolog.Logger) *ResultArchive {
	return &ResultArchive{
		baseDir: baseDir,
		logger:  logger.With().Str("component", "ResultArchive").Logger(),
	}
}

// ArchiveScan writes all results of a scan to one Parquet file and returns
// its path. The file lands under <base>/<client>/<scan-id>.parquet.
func (ra *ResultArchive) ArchiveScan(scan *models.Scan) (string, error) {
	clientDir := filepath.Join(ra.baseDir, urlhandler.SanitizeFilename(scan.ClientID))
	if err := os.MkdirAll(clientDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory %s: %w", clientDir, err)
	}

	records := ra.toRecords(scan)
	filePath := filepath.Join(clientDir, urlhandler.SanitizeFilename(scan.ID)+".parquet")

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive file %s: %w", filePath, err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[ParquetSearchResult](file, parquet.Compression(&parquet.Zstd))
	if _, err := writer.Write(records); err != nil {
		return "", fmt.Errorf("failed to write archive records: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize archive file: %w", err)
	}

	ra.logger.Info().
		Str("scan_id", scan.ID).
		Str("file", filePath).
		Int("records", len(records)).
		Msg("Scan results archived")

	return filePath, nil
}

// ReadArchive loads all records from one archive file.
func (ra *ResultArchive) ReadArchive(filePath string) ([]ParquetSearchResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := parquet.NewGenericReader[ParquetSearchResult](file)
	defer reader.Close()

	var records []ParquetSearchResult
	buf := make([]ParquetSearchResult, 64)
	for {
		n, err := reader.Read(buf)
		records = append(records, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read archive records: %w", err)
		}
	}
	return records, nil
}

func (ra *ResultArchive) toRecords(scan *models.Scan) []ParquetSearchResult {
	records := make([]ParquetSearchResult, 0, scan.TotalLinks())
	scanTimestamp := scan.ScanDate.UnixMilli()

	for gi := range scan.Keywords {
		group := &scan.Keywords[gi]
		for li := range group.Links {
			link := &group.Links[li]
			records = append(records, ParquetSearchResult{
				ScanID:        scan.ID,
				ClientID:      scan.ClientID,
				Region:        scan.Region,
				Keyword:       group.Keyword,
				URL:           link.URL,
				NormalizedURL: urlhandler.NormalizeURL(link.URL),
				Title:         link.Title,
				Position:      int32(link.Position),
				Sentiment:     string(link.Sentiment),
				Domain:        link.Domain,
				ScanTimestamp: scanTimestamp,
			})
		}
	}
	return records
}
