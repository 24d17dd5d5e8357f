package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/intakelog/internal/config"
)

// NewLogger builds the process logger writing to w and installs it as the
// slog default.
func NewLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	logger := newLogger(w, cfg)
	slog.SetDefault(logger)
	return logger
}

// newLogger builds a logger writing to w.
//
// Format "json" produces structured JSON. Any other format produces
// human-readable text with source locations. Level is one of debug, info,
// warn, error (case-insensitive); anything else means info.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !isJSON(cfg.Format),
	}

	if isJSON(cfg.Format) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func isJSON(format string) bool {
	return strings.EqualFold(strings.TrimSpace(format), "json")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
