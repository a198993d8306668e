// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelSilly is below debug; it covers per-request traces.
const LevelSilly = slog.LevelDebug - 4

// ParseLevel maps a level name to an slog level. "verbose" is an alias for
// debug.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "verbose", "debug":
		return slog.LevelDebug, nil
	case "silly":
		return LevelSilly, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// New returns a text logger writing to w at the named level.
func New(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l <= LevelSilly {
					a.Value = slog.StringValue("SILLY")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
