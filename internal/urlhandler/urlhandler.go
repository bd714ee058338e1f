package urlhandler

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Regex for cleaning filenames
var (
	unsafeFilenameCharsRegex = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)
	multipleUnderscoresRegex = regexp.MustCompile(`_+`)
)

// NormalizeURL reduces a URL to the canonical form used for identity
// comparison between scans: trimmed, lowercased, with the http/https scheme,
// a leading "www." and one trailing slash removed. Mechanically distinct but
// semantically identical URLs (protocol, www, trailing-slash variants)
// normalize to the same string.
//
// NormalizeURL never fails: malformed or empty input degrades to the trimmed,
// lowercased raw string. The result is idempotent under re-normalization.
func NormalizeURL(rawURL string) string {
	normalized := strings.ToLower(strings.TrimSpace(rawURL))
	if normalized == "" {
		return ""
	}

	normalized = strings.TrimPrefix(normalized, "http://")
	normalized = strings.TrimPrefix(normalized, "https://")
	normalized = strings.TrimPrefix(normalized, "www.")
	normalized = strings.TrimSuffix(normalized, "/")

	return normalized
}

// ExtractDomain returns the effective TLD+1 of a URL's host, e.g.
// "sub.example.co.uk/page" -> "example.co.uk". Scheme and "www." are optional
// in the input. Returns an empty string when no host can be determined.
func ExtractDomain(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ""
	}

	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// Single-label hosts (localhost, bare TLDs) have no eTLD+1.
		return host
	}
	return domain
}

// SanitizeFilename creates a safe filename string from a URL or any input string.
// It removes the protocol, replaces unsafe characters with underscores, and cleans up underscores.
func SanitizeFilename(input string) string {
	name := input
	if i := strings.Index(name, "://"); i != -1 {
		name = name[i+3:]
	}

	name = unsafeFilenameCharsRegex.ReplaceAllString(name, "_")
	name = multipleUnderscoresRegex.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return "sanitized_empty_input"
	}

	return name
}

// ValidateURLFormat validates URL format using net/url parsing (for config validation)
func ValidateURLFormat(rawURL string) error {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return errEmptyURL
	}

	if _, err := url.ParseRequestURI(trimmedURL); err != nil {
		return err
	}

	return nil
}
