package logger

import (
	"io"
	"log/slog"
	"os"
)

func New(env string) *slog.Logger {
	return NewTo(os.Stdout, env)
}

// NewTo writes JSON lines to w. "dev" enables debug output, "test" drops
// everything below warnings.
func NewTo(w io.Writer, env string) *slog.Logger {
	level := slog.LevelInfo
	switch env {
	case "dev":
		level = slog.LevelDebug
	case "test":
		level = slog.LevelWarn
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("app", "herb-stock")
}
