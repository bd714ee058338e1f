package models

// Sentiment represents the sentiment classification of a search result.
type Sentiment string

const (
	// SentimentPositive indicates content favorable to the client.
	SentimentPositive Sentiment = "positive"
	// SentimentNegative indicates content unfavorable to the client.
	SentimentNegative Sentiment = "negative"
	// SentimentNeutral indicates content with no clear polarity.
	SentimentNeutral Sentiment = "neutral"
	// SentimentUnrelated indicates content not about the client at all.
	SentimentUnrelated Sentiment = "unrelated"
)

// SearchResult represents one sentiment-tagged search hit for a keyword within a scan.
// Results are immutable once attached to a completed scan.
type SearchResult struct {
	Keyword   string    `json:"keyword"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet,omitempty"`
	Position  int       `json:"position"` // 1-based rank within the keyword's result list
	Sentiment Sentiment `json:"sentiment"`
	Domain    string    `json:"domain,omitempty"`
}

// KeywordGroup holds the ordered search results for one distinct keyword within a scan.
// Links follow search-engine rank order (position ascending).
type KeywordGroup struct {
	Keyword  string         `json:"keyword"`
	Position int            `json:"position"`
	Links    []SearchResult `json:"links"`
}
