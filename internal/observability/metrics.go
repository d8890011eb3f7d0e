// Package observability wires Sentry metrics and outbound HTTP tracing.
package observability

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"
)

type meterContextKey struct{}

// WithMeter returns a context carrying the provided meter.
func WithMeter(ctx context.Context, meter sentry.Meter) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if meter == nil {
		meter = sentry.NewMeter(ctx)
	}
	return context.WithValue(ctx, meterContextKey{}, meter.WithCtx(ctx))
}

// MeterFromContext returns the request-scoped meter from context or a new one.
func MeterFromContext(ctx context.Context) sentry.Meter {
	if ctx == nil {
		ctx = context.Background()
	}
	if meter, ok := ctx.Value(meterContextKey{}).(sentry.Meter); ok && meter != nil {
		return meter.WithCtx(ctx)
	}
	return sentry.NewMeter(ctx).WithCtx(ctx)
}

// CountOutcome increments name tagged with outcome, e.g. "success" or a
// short failure reason.
func CountOutcome(ctx context.Context, name, outcome string) {
	MeterFromContext(ctx).Count(name, 1, sentry.WithAttributes(attribute.String("outcome", outcome)))
}

// ObserveDuration records the time elapsed since start in milliseconds.
func ObserveDuration(ctx context.Context, name string, start time.Time, attrs ...attribute.Builder) {
	MeterFromContext(ctx).Distribution(
		name,
		float64(time.Since(start).Milliseconds()),
		sentry.WithUnit(sentry.UnitMillisecond),
		sentry.WithAttributes(attrs...),
	)
}
