package logger

import (
	"io"
	"os"

	"golang.org/x/exp/slog"

	"reminders/internal/app/server/config"
	"reminders/internal/utils/logger/handlers/slogpretty"
)

// New builds the process logger for the given environment: colored output
// for local runs, JSON everywhere else.
func New(env string) *slog.Logger {
	return NewTo(os.Stdout, env)
}

// NewTo is New writing to w.
func NewTo(w io.Writer, env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case config.EnvProd:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog(w)
	}

	return log
}

func setupPrettySlog(w io.Writer) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(w)

	return slog.New(handler)
}

// Discard drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
