package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reputrack/internal/config"
	"reputrack/internal/errorwrapper"
	"reputrack/internal/models"

	"github.com/rs/zerolog"
)

// Classifier tags search results with a sentiment via an LLM chat-completions
// endpoint. The rest of the system treats the resulting sentiment as opaque
// pass-through data; anything the model returns outside the known labels
// deterministically degrades to neutral.
type Classifier struct {
	httpClient *http.Client
	config     config.SentimentConfig
	logger     zerolog.Logger
}

// NewClassifier creates a sentiment classifier.
func NewClassifier(cfg config.SentimentConfig, logger zerolog.Logger) (*Classifier, error) {
	if cfg.APIKey == "" {
		return nil, errorwrapper.WrapError(errorwrapper.ErrInvalidConfiguration, "sentiment API key must be configured")
	}

	return &Classifier{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		config:     cfg,
		logger:     logger.With().Str("component", "SentimentClassifier").Logger(),
	}, nil
}

// ClassifyResults returns one sentiment per input result, in input order.
// Results are classified in batches; a batch that cannot be parsed falls back
// to neutral for its members rather than failing the scan.
func (c *Classifier) ClassifyResults(ctx context.Context, results []models.SearchResult, clientName string) ([]models.Sentiment, error) {
	sentiments := make([]models.Sentiment, len(results))
	for i := range sentiments {
		sentiments[i] = models.SentimentNeutral
	}

	batchSize := c.config.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultSentimentBatchSize
	}

	for start := 0; start < len(results); start += batchSize {
		end := start + batchSize
		if end > len(results) {
			end = len(results)
		}

		batch, err := c.classifyBatch(ctx, results[start:end], clientName)
		if err != nil {
			return nil, err
		}
		copy(sentiments[start:], batch)
	}

	return sentiments, nil
}

func (c *Classifier) classifyBatch(ctx context.Context, batch []models.SearchResult, clientName string) ([]models.Sentiment, error) {
	prompt := buildPrompt(batch, clientName)

	requestBody := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{
				Role: "system",
				Content: "You classify search results about a client for online reputation monitoring. " +
					"Answer with a JSON array only, one entry per result: " +
					`[{"index": 1, "sentiment": "positive|negative|neutral|unrelated"}]`,
			},
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
	}

	payload, err := json.Marshal(requestBody)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to encode sentiment request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "sentiment request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errorwrapper.NewAPIError("sentiment", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to decode sentiment response")
	}
	if len(parsed.Choices) == 0 {
		return nil, errorwrapper.NewError("sentiment response contained no choices")
	}

	return c.parseAnswer(parsed.Choices[0].Message.Content, len(batch)), nil
}

// parseAnswer extracts per-result sentiments from the model's reply. Missing
// indices, unknown labels, or an unparseable reply all degrade to neutral;
// classification noise must never abort a scan.
func (c *Classifier) parseAnswer(answer string, batchLen int) []models.Sentiment {
	sentiments := make([]models.Sentiment, batchLen)
	for i := range sentiments {
		sentiments[i] = models.SentimentNeutral
	}

	jsonPart := extractJSONArray(answer)
	if jsonPart == "" {
		c.logger.Warn().Msg("Sentiment answer contained no JSON array, defaulting batch to neutral")
		return sentiments
	}

	var entries []answerEntry
	if err := json.Unmarshal([]byte(jsonPart), &entries); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to parse sentiment answer, defaulting batch to neutral")
		return sentiments
	}

	for _, entry := range entries {
		idx := entry.Index - 1 // model numbers results from 1
		if idx < 0 || idx >= batchLen {
			continue
		}
		if sentiment, ok := knownSentiment(entry.Sentiment); ok {
			sentiments[idx] = sentiment
		}
	}
	return sentiments
}

func knownSentiment(label string) (models.Sentiment, bool) {
	switch models.Sentiment(strings.ToLower(strings.TrimSpace(label))) {
	case models.SentimentPositive:
		return models.SentimentPositive, true
	case models.SentimentNegative:
		return models.SentimentNegative, true
	case models.SentimentNeutral:
		return models.SentimentNeutral, true
	case models.SentimentUnrelated:
		return models.SentimentUnrelated, true
	}
	return "", false
}

// extractJSONArray returns the first top-level JSON array in the text, which
// tolerates the model wrapping its answer in prose or code fences.
func extractJSONArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}

func buildPrompt(batch []models.SearchResult, clientName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Client: %s\n\nSearch results:\n", clientName)
	for i, result := range batch {
		fmt.Fprintf(&sb, "%d. Title: %s\n   URL: %s\n", i+1, result.Title, result.URL)
		if result.Snippet != "" {
			fmt.Fprintf(&sb, "   Snippet: %s\n", result.Snippet)
		}
	}
	return sb.String()
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type answerEntry struct {
	Index     int    `json:"index"`
	Sentiment string `json:"sentiment"`
}
