package handlers

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"

	"github.com/murshadpk/storefront/internal/observability"
)

// MetricsContext stores a meter pre-tagged with the request and, when a
// valid bearer token is present, the caller.
func (h *Handlers) MetricsContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		attrs := []attribute.Builder{
			attribute.String("http.method", r.Method),
			attribute.String("network.client.ip", clientIP(r)),
		}
		if requestID := requestIDFromContext(ctx); requestID != "" {
			attrs = append(attrs, attribute.String("http.request_id", requestID))
		}
		if route := routeLabel(r); route != "" {
			attrs = append(attrs, attribute.String("http.route", route))
		}
		if h.tokens != nil {
			if claims, err := h.tokens.VerifyRequest(r); err == nil {
				attrs = append(attrs,
					attribute.Int64("user.id", claims.UserID),
					attribute.String("user.role", claims.Role),
				)
			}
		}

		meter := sentry.NewMeter(ctx).WithCtx(ctx)
		meter.SetAttributes(attrs...)
		next.ServeHTTP(w, r.WithContext(observability.WithMeter(ctx, meter)))
	})
}
