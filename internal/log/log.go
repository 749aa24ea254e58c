// Package log configures rokit's ambient slog logger from the ROKIT_LOG
// environment variable, the same way RUST_LOG configures a Rust CLI.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a text handler on the default slog logger, writing to
// stderr at the level named by ROKIT_LOG ("debug", "info", "warn",
// "error"). An unset or unrecognized value defaults to warn, so ordinary
// runs stay quiet unless something needs attention.
func Setup() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})))
}

func levelFromEnv() slog.Level {
	return parseLevel(os.Getenv("ROKIT_LOG"))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
