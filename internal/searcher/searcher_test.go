package searcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reputrack/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSearchConfig(baseURL string) config.SearchConfig {
	cfg := config.NewDefaultSearchConfig()
	cfg.APIKey = "test-key"
	cfg.SearchEngineID = "test-cx"
	cfg.BaseURL = baseURL
	cfg.RequestDelayMs = 0
	cfg.MaxRetries = 0
	return cfg
}

func TestNewSearchClient_RejectsPlaceholders(t *testing.T) {
	cfg := config.NewDefaultSearchConfig()
	cfg.APIKey = "your_google_api_key_here"
	cfg.SearchEngineID = "cx"

	_, err := NewSearchClient(cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg.APIKey = ""
	_, err = NewSearchClient(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "Acme Corp lawsuit", BuildQuery("Acme Corp", "lawsuit"))
	assert.Equal(t, "acme corp reviews", BuildQuery("Acme Corp", "acme corp reviews"))
	assert.Equal(t, "lawsuit", BuildQuery("", "lawsuit"))
}

func TestSearchKeyword_AdaptsProviderFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "us", r.URL.Query().Get("gl"))

		payload := map[string]any{
			"items": []map[string]any{
				{"title": "First", "link": "https://example.com/first", "snippet": "plain snippet"},
				{"title": "Second", "url": "https://example.com/second", "htmlSnippet": "<b>Acme</b> &amp; partners"},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client, err := NewSearchClient(testSearchConfig(server.URL), zerolog.Nop())
	require.NoError(t, err)

	results, err := client.SearchKeyword(context.Background(), "acme", "US", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "https://example.com/first", results[0].URL)
	assert.Equal(t, 1, results[0].Position)
	assert.Equal(t, "example.com", results[0].Domain)

	// "url" fallback and htmlSnippet cleanup both happen at this boundary.
	assert.Equal(t, "https://example.com/second", results[1].URL)
	assert.Equal(t, 2, results[1].Position)
	assert.Equal(t, "Acme & partners", results[1].Snippet)
}

func TestSearchKeyword_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewSearchClient(testSearchConfig(server.URL), zerolog.Nop())
	require.NoError(t, err)

	_, err = client.SearchKeyword(context.Background(), "acme", "US", 10)
	assert.Error(t, err)
}

func TestHTMLSnippetToText(t *testing.T) {
	assert.Equal(t, "Acme fined again", htmlSnippetToText("<b>Acme</b> fined <b>again</b>"))
}
