package differ

// CompareConfig holds configuration for scan comparison.
type CompareConfig struct {
	// EnableTitleDiff controls whether matched links with changed titles get
	// a compact title diff attached for report rendering.
	EnableTitleDiff bool
	// WarnOnDuplicateURLs controls logging of ambiguous matches caused by
	// duplicate URLs in the previous scan's results.
	WarnOnDuplicateURLs bool
}

// DefaultCompareConfig returns default configuration
func DefaultCompareConfig() CompareConfig {
	return CompareConfig{
		EnableTitleDiff:     true,
		WarnOnDuplicateURLs: true,
	}
}
