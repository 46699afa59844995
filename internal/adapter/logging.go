package adapter

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// SetupLogger opens the log file from cfg and returns a JSON slog logger
// writing to it. The returned closer releases the file.
// The terminal belongs to the TUI, so logs never go to stdout.
func SetupLogger(cfg LoggingConfig) (*slog.Logger, io.Closer, error) {
	logPath := ExpandHome(cfg.File)

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, err
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	return NewLogger(logFile, cfg.Level), logFile, nil
}

// NewLogger builds a JSON logger on w at the named level
func NewLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLogLevel(level),
	})
	return slog.New(handler)
}

// ParseLogLevel converts a string log level to slog.Level (INFO when unknown)
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
