package app

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns the process logger: text by default, JSON when
// LOG_FORMAT=json, filtered at LOG_LEVEL.
func NewLogger(cfg *Config) *slog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	if cfg == nil {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	if lvl, err := parseLevel(cfg.LogLevel); err == nil {
		opts.Level = lvl
	}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
