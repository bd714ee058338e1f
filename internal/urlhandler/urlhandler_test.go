package urlhandler

import "testing"

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"scheme stripped", "http://example.com", "example.com"},
		{"https stripped", "https://example.com", "example.com"},
		{"www stripped", "www.example.com", "example.com"},
		{"trailing slash stripped", "example.com/", "example.com"},
		{"lowercased", "HTTP://Example.COM/", "example.com"},
		{"all variants collapse", "https://www.Example.com/", "example.com"},
		{"path preserved", "https://example.com/news/article", "example.com/news/article"},
		{"only one trailing slash removed", "example.com//", "example.com/"},
		{"whitespace trimmed", "  example.com  ", "example.com"},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
		{"garbage passes through", "not a url at all", "not a url at all"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeURL(tc.input)
			if got != tc.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	inputs := []string{
		"https://www.Example.com/path/",
		"example.com",
		"HTTP://WWW.FOO.BAR/baz?q=1",
		"",
		"   weird input   ",
	}
	for _, input := range inputs {
		once := NormalizeURL(input)
		twice := NormalizeURL(once)
		if once != twice {
			t.Errorf("NormalizeURL not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"https://www.example.com/page", "example.com"},
		{"http://news.example.co.uk/article", "example.co.uk"},
		{"example.com", "example.com"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ExtractDomain(tc.input); got != tc.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := SanitizeFilename("https://example.com/some page?q=1")
	if got != "example.com_some_page_q_1" {
		t.Errorf("unexpected sanitized name: %s", got)
	}

	if SanitizeFilename("http://") != "sanitized_empty_input" {
		t.Errorf("expected fallback name for empty sanitization result")
	}
}
