package logger

import (
	"log/slog"
	"os"
)

// New собирает JSON-логгер процесса. В dev включён debug-уровень,
// в остальных окружениях пишем от info и выше.
func New(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if env == "dev" {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
