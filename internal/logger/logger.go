package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reputrack/internal/config"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zerolog logger from the log configuration. Console output
// goes to stderr; when a log file is configured it is rotated with lumberjack
// and receives the same events.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}

// LoggerBuilder provides a fluent interface for constructing the logger
type LoggerBuilder struct {
	config config.LogConfig
	scanID string
}

// NewLoggerBuilder creates a new logger builder with defaults
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		config: config.NewDefaultLogConfig(),
	}
}

// WithConfig sets the log configuration
func (b *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	b.config = cfg
	return b
}

// WithScanID tags every event with the scan session id and routes the log
// file into a per-scan subdirectory.
func (b *LoggerBuilder) WithScanID(scanID string) *LoggerBuilder {
	b.scanID = scanID
	return b
}

// Build assembles the logger
func (b *LoggerBuilder) Build() (zerolog.Logger, error) {
	level := parseLevel(b.config.LogLevel)

	writers := []io.Writer{b.consoleWriter()}
	if b.config.LogFile != "" {
		writers = append(writers, b.fileWriter())
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp()

	if b.scanID != "" {
		ctx = ctx.Str("scan_session_id", b.scanID)
	}

	return ctx.Logger(), nil
}

func (b *LoggerBuilder) consoleWriter() io.Writer {
	if b.config.LogFormat == "json" {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
}

func (b *LoggerBuilder) fileWriter() io.Writer {
	finalPath := b.config.LogFile
	if b.scanID != "" {
		baseDir := filepath.Dir(finalPath)
		finalPath = filepath.Join(baseDir, "scans", b.scanID, filepath.Base(finalPath))
	}

	if err := os.MkdirAll(filepath.Dir(finalPath), 0755); err != nil {
		finalPath = b.config.LogFile
	}

	return &lumberjack.Logger{
		Filename:   finalPath,
		MaxSize:    b.config.MaxLogSizeMB,
		MaxBackups: b.config.MaxLogBackups,
		LocalTime:  true,
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
