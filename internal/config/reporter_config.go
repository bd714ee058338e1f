package config

// ReporterConfig defines configuration for report generation
type ReporterConfig struct {
	OutputDir    string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" validate:"required"`
	GenerateJSON bool   `json:"generate_json,omitempty" yaml:"generate_json,omitempty"`
	GenerateHTML bool   `json:"generate_html,omitempty" yaml:"generate_html,omitempty"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		OutputDir:    DefaultReportOutputDir,
		GenerateJSON: true,
		GenerateHTML: true,
	}
}
