// Package logger installs the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvKeyLogLevel selects the minimum level: debug, info, warn or error.
const EnvKeyLogLevel = "LOG_LEVEL"

// ParseLevel maps a level name to slog.Level. Unknown names yield Info.
func ParseLevel(s string) slog.Level {
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

// New returns a JSON logger writing to w at the given level, tagged with the active trace.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewTraceHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

// Init installs a JSON logger on stdout as the slog default, using LOG_LEVEL.
func Init() *slog.Logger {
	l := New(os.Stdout, ParseLevel(os.Getenv(EnvKeyLogLevel)))
	slog.SetDefault(l)
	return l
}
