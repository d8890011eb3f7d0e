package logging

import (
	"context"
	"log/slog"

	sentryslog "github.com/getsentry/sentry-go/slog"
)

// NewSentryHandler captures error records as Sentry events and ships
// warnings as Sentry logs. The hub is taken from the record's context when
// one is attached, otherwise the current hub is used.
func NewSentryHandler(ctx context.Context) slog.Handler {
	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn},
	}.NewSentryHandler(ctx)
}
