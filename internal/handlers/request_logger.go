package handlers

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/observability"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder remembers what the handler wrote so the access log can
// report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusRecorder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusRecorder) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// RequestLogger puts a request logger in the context and writes one access
// line per request. 5xx responses log at error, 4xx at warn.
func (h *Handlers) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := routeLabel(r)
		requestID := requestIDFromRequest(r)
		w.Header().Set(requestIDHeader, requestID)

		args := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_ip", clientIP(r),
		}
		if route != "" {
			args = append(args, "route", route)
		}
		if userAgent := strings.TrimSpace(r.UserAgent()); userAgent != "" {
			args = append(args, "user_agent", userAgent)
		}
		logger := h.logger.With(args...)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		ctx = logging.WithLogger(ctx, logger)
		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r.WithContext(ctx))

		status := recorder.code()
		elapsed := time.Since(start)
		recordRequestMetrics(ctx, r.Method, route, status, start)

		level := slog.LevelInfo
		switch {
		case r.URL.Path == "/health":
			level = slog.LevelDebug
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "request completed",
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"bytes", recorder.bytes,
		)
	})
}

func recordRequestMetrics(ctx context.Context, method, route string, status int, start time.Time) {
	if route == "" {
		route = "unmatched"
	}
	attrs := []attribute.Builder{
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.String("http.status_class", strconv.Itoa(status/100)+"xx"),
	}
	meter := observability.MeterFromContext(ctx)
	meter.Count("http.server.requests", 1, sentry.WithAttributes(attrs...))
	if status >= http.StatusInternalServerError {
		meter.Count("http.server.errors", 1, sentry.WithAttributes(attrs...))
	}
	observability.ObserveDuration(ctx, "http.server.duration", start, attrs...)
}

func requestIDFromRequest(r *http.Request) string {
	if r != nil {
		if id := strings.TrimSpace(r.Header.Get(requestIDHeader)); id != "" && len(id) <= 128 {
			return id
		}
	}
	return uuid.NewString()
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-Ip, then the
// socket address.
func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-Ip")); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// routeLabel is the mux route name, or its path template when unnamed.
func routeLabel(r *http.Request) string {
	if r == nil {
		return ""
	}
	route := mux.CurrentRoute(r)
	if route == nil {
		return ""
	}
	if name := route.GetName(); name != "" {
		return name
	}
	template, err := route.GetPathTemplate()
	if err != nil {
		return ""
	}
	return template
}
