// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the slog.Logger that is threaded through a run.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/pubmed-fetch/pkg/types"
)

// New creates a logger writing to w with the level and format from cfg.
// Unknown values fall back to info level and text format. Every record
// carries a timestamp and level.
func New(cfg types.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts debug, info, warn (or warning), and error to a
// slog.Level, case-insensitively. Anything else is info.
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

// ValidLevel reports whether level is one ParseLevel recognizes.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// ValidFormat reports whether format is text or json.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json":
		return true
	}
	return false
}
