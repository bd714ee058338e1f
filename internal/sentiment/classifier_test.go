package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reputrack/internal/config"
	"reputrack/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": answer}},
			},
		}
		_ = json.NewEncoder(w).Encode(response)
	}))
}

func testClassifier(t *testing.T, baseURL string) *Classifier {
	t.Helper()
	cfg := config.NewDefaultSentimentConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = baseURL
	classifier, err := NewClassifier(cfg, zerolog.Nop())
	require.NoError(t, err)
	return classifier
}

func sampleResults() []models.SearchResult {
	return []models.SearchResult{
		{Title: "Acme wins award", URL: "https://example.com/award", Position: 1},
		{Title: "Acme sued", URL: "https://example.com/lawsuit", Position: 2},
		{Title: "Acme the board game", URL: "https://example.org/game", Position: 3},
	}
}

func TestClassifyResults(t *testing.T) {
	server := chatServer(t, `[{"index":1,"sentiment":"positive"},{"index":2,"sentiment":"negative"},{"index":3,"sentiment":"unrelated"}]`)
	defer server.Close()

	sentiments, err := testClassifier(t, server.URL).ClassifyResults(context.Background(), sampleResults(), "Acme")
	require.NoError(t, err)
	require.Len(t, sentiments, 3)

	assert.Equal(t, models.SentimentPositive, sentiments[0])
	assert.Equal(t, models.SentimentNegative, sentiments[1])
	assert.Equal(t, models.SentimentUnrelated, sentiments[2])
}

func TestClassifyResults_ProseWrappedAnswer(t *testing.T) {
	server := chatServer(t, "Here is the classification:\n```json\n[{\"index\":1,\"sentiment\":\"negative\"}]\n```")
	defer server.Close()

	sentiments, err := testClassifier(t, server.URL).ClassifyResults(context.Background(), sampleResults()[:1], "Acme")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNegative, sentiments[0])
}

func TestClassifyResults_UnparseableDefaultsToNeutral(t *testing.T) {
	server := chatServer(t, "I cannot classify these results.")
	defer server.Close()

	sentiments, err := testClassifier(t, server.URL).ClassifyResults(context.Background(), sampleResults(), "Acme")
	require.NoError(t, err)
	for i, sentiment := range sentiments {
		assert.Equalf(t, models.SentimentNeutral, sentiment, "result %d", i)
	}
}

func TestClassifyResults_UnknownLabelIgnored(t *testing.T) {
	server := chatServer(t, `[{"index":1,"sentiment":"enthusiastic"}]`)
	defer server.Close()

	sentiments, err := testClassifier(t, server.URL).ClassifyResults(context.Background(), sampleResults()[:1], "Acme")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNeutral, sentiments[0])
}

func TestNewClassifier_RequiresAPIKey(t *testing.T) {
	cfg := config.NewDefaultSentimentConfig()
	_, err := NewClassifier(cfg, zerolog.Nop())
	assert.Error(t, err)
}
