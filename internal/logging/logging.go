// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
)

// Level maps a -v count to a log level: warn, info, then debug.
func Level(verbosity int) slog.Level {
	switch {
	case verbosity >= 2:
		return slog.LevelDebug
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// New returns a text logger writing to w at the level for verbosity.
func New(w io.Writer, verbosity int) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(verbosity),
	}))
}
