// Package logging builds the slog loggers used across pqbench.
//
// Every component takes a *slog.Logger and tags its records with a
// "component" attribute; this package only decides where records go and
// which level and format they use.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ComponentKey is the attribute components tag their records with.
const ComponentKey = "component"

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel converts a level name (debug, info, warn, error) to a
// slog.Level. Matching is case-insensitive; "warning" is accepted too.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}

// New returns a logger writing to w at the given level, formatted as
// text or JSON.
func New(w io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "", FormatText:
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
	return slog.New(h), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Component returns l tagged with the component name.
func Component(l *slog.Logger, name string) *slog.Logger {
	return l.With(slog.String(ComponentKey, name))
}
