package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spektr-org/logviz/internal/config"
	"github.com/spektr-org/logviz/internal/errors"
)

const (
	logDirPerm  = 0755
	logFilePerm = 0644
)

// Logger is a slog logger bound to its output. Close releases the log file, if any.
type Logger struct {
	*slog.Logger
	file *os.File
}

// ParseLevel parses a string log level. Unknown levels fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger from the logging configuration.
func New(cfg config.LoggingConfig) (*Logger, error) {
	logger := &Logger{}

	var out io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "file":
		if cfg.File == "" {
			return nil, errors.NewConfigError("log file path is required when output is 'file'", "logging.file")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File), logDirPerm); err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeFileSystem, "failed to create log directory")
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeFileSystem, "failed to open log file")
		}
		logger.file = file
		out = file
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("invalid log output: %s", cfg.Output), "logging.output")
	}

	logger.Logger = slog.New(NewHandler(out, cfg))
	return logger, nil
}

// NewHandler builds the slog handler for the configured format and level.
func NewHandler(w io.Writer, cfg config.LoggingConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Install creates a logger and makes it the slog default.
func Install(cfg config.LoggingConfig) (*Logger, error) {
	logger, err := New(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.Logger)
	return logger, nil
}

// Close closes the log file when output is a file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
