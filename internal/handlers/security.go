package handlers

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"

	"github.com/murshadpk/storefront/internal/observability"
)

// SecurityHeaders sets the headers every JSON response carries.
func (h *Handlers) SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		headers.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		if strings.HasPrefix(r.URL.Path, "/api/") {
			headers.Set("Cache-Control", "no-store")
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSameOrigin rejects cart and checkout writes coming from another
// site. The cart cookie is ambient, so Origin (or Referer when Origin is
// absent) must name this host.
func (h *Handlers) RequireSameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !requestMutatesState(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		reason := h.crossOriginReason(r)
		if reason == "" {
			next.ServeHTTP(w, r)
			return
		}

		observability.MeterFromContext(r.Context()).Count("security.same_origin.blocked", 1,
			sentry.WithAttributes(attribute.String("reason", reason)))
		h.loggerFromContext(r.Context()).Warn("blocked cross-origin request",
			"reason", reason,
			"origin", r.Header.Get("Origin"),
			"referer", r.Referer(),
		)
		h.writeError(w, r, http.StatusForbidden, "Cross-origin request rejected")
	})
}

func requestMutatesState(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// crossOriginReason returns "" when the request is same-origin.
func (h *Handlers) crossOriginReason(r *http.Request) string {
	source, reason := strings.TrimSpace(r.Header.Get("Origin")), "invalid_origin"
	if source == "" {
		source, reason = strings.TrimSpace(r.Referer()), "invalid_referer"
	}
	if source == "" {
		return "missing_origin"
	}

	host := hostOf(source)
	if host == "" {
		return reason
	}
	if host == normalizeHost(r.Host) {
		return ""
	}
	if h.config != nil && host == hostOf(h.config.BaseURL) {
		return ""
	}
	return reason
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

func normalizeHost(hostport string) string {
	hostport = strings.TrimSpace(hostport)
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return strings.ToLower(host)
	}
	return strings.ToLower(hostport)
}
