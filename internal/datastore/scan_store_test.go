package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"reputrack/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ScanStore {
	t.Helper()
	store, err := NewScanStore(filepath.Join(t.TempDir(), "reputrack.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func storedScan(id string, date time.Time) *models.Scan {
	return &models.Scan{
		ID:       id,
		ClientID: "client-1",
		Region:   "US",
		Status:   models.ScanStatusPending,
		ScanDate: date,
	}
}

func TestScanStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	scan := storedScan("scan-1", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.CreateScan(scan))

	groups := []models.KeywordGroup{
		{
			Keyword:  "acme corp",
			Position: 1,
			Links: []models.SearchResult{
				{Keyword: "acme corp", URL: "https://example.com/a", Title: "A", Position: 1, Sentiment: models.SentimentPositive, Domain: "example.com"},
				{Keyword: "acme corp", URL: "https://example.com/b", Title: "B", Position: 2, Sentiment: models.SentimentNegative, Domain: "example.com"},
			},
		},
		{
			Keyword:  "acme corp reviews",
			Position: 2,
			Links: []models.SearchResult{
				{Keyword: "acme corp reviews", URL: "https://reviews.example.org", Title: "R", Position: 1, Sentiment: models.SentimentNeutral, Domain: "example.org"},
			},
		},
	}
	require.NoError(t, store.SaveKeywordGroups(scan.ID, groups))
	require.NoError(t, store.UpdateScanStatus(scan.ID, models.ScanStatusCompleted))

	loaded, err := store.LoadScan(scan.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, models.ScanStatusCompleted, loaded.Status)
	assert.False(t, loaded.CompletedAt.IsZero())
	require.Len(t, loaded.Keywords, 2)
	assert.Equal(t, "acme corp", loaded.Keywords[0].Keyword)
	require.Len(t, loaded.Keywords[0].Links, 2)
	assert.Equal(t, "https://example.com/a", loaded.Keywords[0].Links[0].URL)
	assert.Equal(t, models.SentimentNegative, loaded.Keywords[0].Links[1].Sentiment)
}

func TestScanStore_LoadMissingScan(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.LoadScan("no-such-scan")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestScanStore_FindPreviousScan(t *testing.T) {
	store := newTestStore(t)

	older := storedScan("scan-old", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	newer := storedScan("scan-new", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	failed := storedScan("scan-failed", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC))
	otherRegion := storedScan("scan-uk", time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC))
	otherRegion.Region = "UK"

	for _, scan := range []*models.Scan{older, newer, failed, otherRegion} {
		require.NoError(t, store.CreateScan(scan))
	}
	require.NoError(t, store.UpdateScanStatus(older.ID, models.ScanStatusCompleted))
	require.NoError(t, store.UpdateScanStatus(newer.ID, models.ScanStatusCompleted))
	require.NoError(t, store.UpdateScanStatus(failed.ID, models.ScanStatusFailed))
	require.NoError(t, store.UpdateScanStatus(otherRegion.ID, models.ScanStatusCompleted))

	// Most recent completed US scan before 2026-08-15: scan-new. The failed
	// scan and the UK scan never qualify.
	previous, err := store.FindPreviousScan("client-1", "US", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, "scan-new", previous.ID)

	// Before the very first scan there is nothing: the bootstrap case.
	previous, err = store.FindPreviousScan("client-1", "US", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, previous)
}

func TestScanStore_StoreComparisonCounters(t *testing.T) {
	store := newTestStore(t)

	scan := storedScan("scan-1", time.Now().UTC())
	require.NoError(t, store.CreateScan(scan))

	result := &models.ComparisonResult{
		ScanID:              "scan-1",
		NewKeywords:         2,
		DisappearedKeywords: 1,
		ImprovedKeywords:    3,
	}
	require.NoError(t, store.StoreComparisonCounters(scan.ID, result))
}

func TestResultArchive_WriteAndRead(t *testing.T) {
	archive := NewResultArchive(t.TempDir(), zerolog.Nop())

	scan := storedScan("scan-1", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	scan.Keywords = []models.KeywordGroup{
		{
			Keyword:  "acme",
			Position: 1,
			Links: []models.SearchResult{
				{Keyword: "acme", URL: "https://www.Example.com/", Title: "Acme", Position: 1, Sentiment: models.SentimentPositive, Domain: "example.com"},
				{Keyword: "acme", URL: "https://example.org/acme", Title: "Acme org", Position: 2, Sentiment: models.SentimentNeutral, Domain: "example.org"},
			},
		},
	}

	path, err := archive.ArchiveScan(scan)
	require.NoError(t, err)

	records, err := archive.ReadArchive(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "scan-1", records[0].ScanID)
	assert.Equal(t, "example.com", records[0].NormalizedURL)
	assert.Equal(t, "positive", records[0].Sentiment)
	assert.EqualValues(t, 1, records[0].Position)
}
