package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Development gets debug level; anything else
// stays at info so request logging does not drown production output.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
