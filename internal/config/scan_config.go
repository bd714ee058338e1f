package config

// ScanConfig defines what to scan: the client, the region, and the keywords
// tracked for them. Keywords may also be supplied via a targets file on the
// command line, which overrides this section.
type ScanConfig struct {
	ClientID          string   `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	ClientName        string   `json:"client_name,omitempty" yaml:"client_name,omitempty"`
	Region            string   `json:"region,omitempty" yaml:"region,omitempty" validate:"required,region"`
	Keywords          []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	ResultsPerKeyword int      `json:"results_per_keyword,omitempty" yaml:"results_per_keyword,omitempty" validate:"min=1,max=100"`
}

// NewDefaultScanConfig creates default scan configuration
func NewDefaultScanConfig() ScanConfig {
	return ScanConfig{
		Region:            DefaultRegion,
		ResultsPerKeyword: DefaultResultsPerKeyword,
	}
}

// SupportedRegions lists the region codes accepted by the search provider.
var SupportedRegions = []string{"US", "UK", "UAE", "CA", "AU", "DE", "FR", "IT", "ES", "NL"}
