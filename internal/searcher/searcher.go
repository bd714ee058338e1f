package searcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reputrack/internal/config"
	"reputrack/internal/errorwrapper"
	"reputrack/internal/models"
	"reputrack/internal/urlhandler"

	"github.com/rs/zerolog"
)

// resultsPerPage is the provider's page size; the API caps one query at 100
// results fetched page by page.
const resultsPerPage = config.DefaultSearchResultsPerPage

// SearchClient wraps the Google Custom Search JSON API. It is the only place
// that sees provider-specific field names; everything downstream works with
// models.SearchResult.
type SearchClient struct {
	httpClient  *http.Client
	config      config.SearchConfig
	logger      zerolog.Logger
	lastRequest time.Time
}

// NewSearchClient creates a search client, rejecting missing or placeholder
// credentials up front so a misconfigured deployment fails at startup rather
// than mid-scan.
func NewSearchClient(cfg config.SearchConfig, logger zerolog.Logger) (*SearchClient, error) {
	if err := validateCredentials(cfg); err != nil {
		return nil, err
	}

	return &SearchClient{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		config:     cfg,
		logger:     logger.With().Str("component", "SearchClient").Logger(),
	}, nil
}

// validateCredentials catches empty keys and the "your_..._here" placeholders
// that ship in sample configs.
func validateCredentials(cfg config.SearchConfig) error {
	if cfg.APIKey == "" || cfg.SearchEngineID == "" {
		return errorwrapper.WrapError(errorwrapper.ErrInvalidConfiguration, "search API key and engine id must be configured")
	}
	for _, value := range []string{cfg.APIKey, cfg.SearchEngineID} {
		if strings.Contains(value, "your_") || strings.Contains(value, "here") {
			return errorwrapper.WrapError(errorwrapper.ErrInvalidConfiguration, "search API credentials look like placeholders")
		}
	}
	return nil
}

// BuildQuery combines the client name with a keyword for more targeted
// results, unless the keyword already mentions the client.
func BuildQuery(clientName, keyword string) string {
	if clientName != "" && !strings.Contains(strings.ToLower(keyword), strings.ToLower(clientName)) {
		return clientName + " " + keyword
	}
	return keyword
}

// SearchKeyword runs one keyword query and returns up to maxResults results
// in rank order, positions numbered from 1. The region is passed through as
// the provider's geolocation parameter.
func (sc *SearchClient) SearchKeyword(ctx context.Context, query, region string, maxResults int) ([]models.SearchResult, error) {
	if maxResults <= 0 || maxResults > config.MaxResultsPerKeyword {
		maxResults = config.MaxResultsPerKeyword
	}

	var results []models.SearchResult
	for start := 1; start <= maxResults; start += resultsPerPage {
		if err := sc.throttle(ctx); err != nil {
			return nil, err
		}

		page, err := sc.fetchPage(ctx, query, region, start)
		if err != nil {
			return nil, err
		}

		for i := range page.Items {
			if len(results) >= maxResults {
				break
			}
			results = append(results, sc.adaptItem(&page.Items[i], query, len(results)+1))
		}

		if len(page.Items) < resultsPerPage {
			break // provider ran out of results
		}
	}

	sc.logger.Debug().Str("query", query).Int("results", len(results)).Msg("Keyword search completed")
	return results, nil
}

// throttle enforces the configured minimum delay between provider requests.
func (sc *SearchClient) throttle(ctx context.Context) error {
	delay := time.Duration(sc.config.RequestDelayMs) * time.Millisecond
	if delay <= 0 || sc.lastRequest.IsZero() {
		sc.lastRequest = time.Now()
		return nil
	}

	elapsed := time.Since(sc.lastRequest)
	if elapsed < delay {
		select {
		case <-time.After(delay - elapsed):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	sc.lastRequest = time.Now()
	return nil
}

func (sc *SearchClient) fetchPage(ctx context.Context, query, region string, start int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("key", sc.config.APIKey)
	params.Set("cx", sc.config.SearchEngineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(resultsPerPage))
	params.Set("start", strconv.Itoa(start))
	if region != "" {
		params.Set("gl", strings.ToLower(region))
	}

	requestURL := sc.config.BaseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= sc.config.MaxRetries; attempt++ {
		if attempt > 0 {
			sc.logger.Warn().Err(lastErr).Int("attempt", attempt).Str("query", query).Msg("Retrying search request")
			if err := sc.throttle(ctx); err != nil {
				return nil, err
			}
		}

		response, err := sc.doRequest(ctx, requestURL)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, errorwrapper.WrapError(lastErr, fmt.Sprintf("search request failed after %d attempts", sc.config.MaxRetries+1))
}

func (sc *SearchClient) doRequest(ctx context.Context, requestURL string) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := sc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errorwrapper.NewAPIError("search", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to decode search response")
	}
	return &parsed, nil
}

// adaptItem converts one provider item into the core's SearchResult shape.
// Some provider payloads carry the address under "url" instead of "link";
// that fallback lives here and nowhere else.
func (sc *SearchClient) adaptItem(item *searchItem, keyword string, position int) models.SearchResult {
	resultURL := item.Link
	if resultURL == "" {
		resultURL = item.URL
	}

	snippet := item.Snippet
	if snippet == "" && item.HTMLSnippet != "" {
		snippet = htmlSnippetToText(item.HTMLSnippet)
	}

	return models.SearchResult{
		Keyword:   keyword,
		URL:       resultURL,
		Title:     item.Title,
		Snippet:   snippet,
		Position:  position,
		Sentiment: models.SentimentNeutral, // classified later by the sentiment pipeline
		Domain:    urlhandler.ExtractDomain(resultURL),
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
