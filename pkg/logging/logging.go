// Package logging provides the slog.Logger factory shared by every repoview app.
//
// Output format and level come from the environment:
//
//	LOG_FORMAT=json    structured JSON for log aggregators (default)
//	LOG_FORMAT=text    key=value pairs for local development
//	LOG_LEVEL=debug|info|warn|error (default info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls the handler built by NewWith.
type Options struct {
	Format string
	Level  string
	// App is attached to every record as the "app" attribute when non-empty.
	App string
}

// FromEnv reads LOG_FORMAT and LOG_LEVEL.
func FromEnv(app string) Options {
	return Options{
		Format: os.Getenv("LOG_FORMAT"),
		Level:  os.Getenv("LOG_LEVEL"),
		App:    app,
	}
}

// New returns a stdout logger configured from the environment.
func New(app string) *slog.Logger {
	return NewWith(os.Stdout, FromEnv(app))
}

// NewWith builds a logger writing to w.
func NewWith(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "text", "console":
		handler = slog.NewTextHandler(w, hopts)
	default:
		handler = slog.NewJSONHandler(w, hopts)
	}

	log := slog.New(handler)
	if opts.App != "" {
		log = log.With("app", opts.App)
	}
	return log
}

func parseLevel(s string) slog.Level {
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
