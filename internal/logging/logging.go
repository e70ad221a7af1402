// Package logging builds the slog logger used by the CLI.
//
// Diagnostics go to stderr so they never mix with a report written to
// stdout. Verbose mode lowers the level to Debug, which also enables the
// parse tree dumps emitted while reducing link trails.
package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// Supported log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Level returns the log level for the given verbosity.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// New creates a text logger writing to w.
func New(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(verbose),
	}))
}

// NewJSON creates a JSON logger writing to w.
func NewJSON(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: Level(verbose),
	}))
}

// NewWithFormat creates a logger for the named format. An empty format
// selects text.
func NewWithFormat(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	switch format {
	case "", FormatText:
		return New(w, verbose), nil
	case FormatJSON:
		return NewJSON(w, verbose), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (supported: %s, %s)", format, FormatText, FormatJSON)
	}
}
