package logging

import (
	"log/slog"
	"os"
)

// New builds the process logger. Prod gets JSON for log shipping,
// everything else gets human-readable text at debug level.
func New(env string) *slog.Logger {
	var handler slog.Handler

	switch env {
	case "prod", "production":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: true,
		})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})
	}

	return slog.New(handler).With("service", "motor-risk")
}
