package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

type Options struct {
	Format string
	Level  slog.Leveler
	// Sentry forwards warnings and errors to the current Sentry hub.
	Sentry bool
}

// New builds the process logger: tint for "text" (the default), the stdlib
// JSON handler for "json".
func New(w io.Writer, opts Options) *slog.Logger {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(w, &tint.Options{Level: level})
	}

	if opts.Sentry {
		handler = MultiHandler(handler, NewSentryHandler(context.Background()))
	}
	return slog.New(handler)
}

// MultiHandler sends each record to every handler that accepts its level.
func MultiHandler(handlers ...slog.Handler) slog.Handler {
	filtered := make([]slog.Handler, 0, len(handlers))
	for _, handler := range handlers {
		if handler != nil {
			filtered = append(filtered, handler)
		}
	}
	switch len(filtered) {
	case 0:
		return slog.NewTextHandler(io.Discard, nil)
	case 1:
		return filtered[0]
	}
	return fanout(filtered)
}

type fanout []slog.Handler

func (h fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs error
	for _, handler := range h {
		if handler.Enabled(ctx, record.Level) {
			errs = errors.Join(errs, handler.Handle(ctx, record.Clone()))
		}
	}
	return errs
}

func (h fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(handler slog.Handler) slog.Handler { return handler.WithAttrs(attrs) })
}

func (h fanout) WithGroup(name string) slog.Handler {
	return h.each(func(handler slog.Handler) slog.Handler { return handler.WithGroup(name) })
}

func (h fanout) each(fn func(slog.Handler) slog.Handler) fanout {
	next := make(fanout, 0, len(h))
	for _, handler := range h {
		next = append(next, fn(handler))
	}
	return next
}
