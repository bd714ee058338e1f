package reporter

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"reputrack/internal/config"
	"reputrack/internal/models"
	"reputrack/internal/urlhandler"

	"github.com/rs/zerolog"
)

//go:embed templates/comparison_report.html.tmpl
var templateFS embed.FS

// Reporter writes the report-ready comparison summary to disk as JSON and
// HTML. Byte-level PDF/Excel rendering is handled by a separate delivery
// layer; this package only produces the downloadable source documents.
type Reporter struct {
	config   config.ReporterConfig
	template *template.Template
	logger   zerolog.Logger
}

// NewReporter creates a reporter and parses the embedded HTML template.
func NewReporter(cfg config.ReporterConfig, logger zerolog.Logger) (*Reporter, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/comparison_report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	return &Reporter{
		config:   cfg,
		template: tmpl,
		logger:   logger.With().Str("component", "Reporter").Logger(),
	}, nil
}

// WriteReport renders the comparison report into the configured output
// directory and returns the paths written, keyed by format.
func (r *Reporter) WriteReport(report *models.ComparisonReport) (map[string]string, error) {
	if err := os.MkdirAll(r.config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", r.config.OutputDir, err)
	}

	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now().UTC()
	}

	baseName := r.reportBaseName(report)
	written := make(map[string]string, 2)

	if r.config.GenerateJSON {
		jsonPath := filepath.Join(r.config.OutputDir, baseName+".json")
		if err := r.writeJSON(jsonPath, report); err != nil {
			return nil, err
		}
		written["json"] = jsonPath
	}

	if r.config.GenerateHTML {
		htmlPath := filepath.Join(r.config.OutputDir, baseName+".html")
		if err := r.writeHTML(htmlPath, report); err != nil {
			return nil, err
		}
		written["html"] = htmlPath
	}

	r.logger.Info().
		Str("scan_id", report.ScanID).
		Int("formats", len(written)).
		Msg("Comparison report written")

	return written, nil
}

func (r *Reporter) reportBaseName(report *models.ComparisonReport) string {
	stamp := report.GeneratedAt.Format("20060102-150405")
	return urlhandler.SanitizeFilename(fmt.Sprintf("comparison_%s_%s", report.ScanID, stamp))
}

func (r *Reporter) writeJSON(path string, report *models.ComparisonReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", path, err)
	}
	return nil
}

func (r *Reporter) writeHTML(path string, report *models.ComparisonReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer file.Close()

	if err := r.template.Execute(file, report); err != nil {
		return fmt.Errorf("failed to render report template: %w", err)
	}
	return nil
}
