// Package logging configures log/slog for carcli.
//
// The TUI owns the terminal, so logs go to a file (or io.Discard) rather than
// stderr while it runs. CLI commands may log to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Level represents a log level
type Level = slog.Level

// Log levels
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format represents the log output format
type Format string

// Output formats
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logging configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer // Defaults to os.Stderr
}

// New creates a new slog.Logger with the given configuration
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

// Nop returns a logger that discards all output
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenFile creates a logger appending to path. The returned closer must be
// called on shutdown. An empty path yields a no-op logger.
func OpenFile(path string, level Level, format Format) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return Nop(), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(Config{Level: level, Format: format, Output: f}), f, nil
}

// ParseLevel parses a log level string, defaulting to LevelInfo
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ParseFormat parses a log format string, defaulting to FormatText
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatText
}
