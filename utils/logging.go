package utils

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process logger. The "DEV" environment gets a human
// readable text handler, everything else structured json.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler
	if strings.EqualFold(env, "DEV") {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(handler)
}
