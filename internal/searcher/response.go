package searcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// searchResponse mirrors the provider's JSON payload, limited to the fields
// this system consumes.
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	URL         string `json:"url"`
	Snippet     string `json:"snippet"`
	HTMLSnippet string `json:"htmlSnippet"`
	DisplayLink string `json:"displayLink"`
}

// htmlSnippetToText strips the provider's highlight markup (<b> tags, HTML
// entities) from an htmlSnippet, returning plain text for the sentiment
// prompt. On parse failure the raw snippet is returned unchanged.
func htmlSnippetToText(htmlSnippet string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSnippet))
	if err != nil {
		return htmlSnippet
	}
	return strings.TrimSpace(doc.Text())
}
