package handlers

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"

	"github.com/murshadpk/storefront/internal/auth"
	"github.com/murshadpk/storefront/internal/observability"
)

// OptionalUser attaches claims when the request carries a bearer token.
// Requests without one pass through; a bad or expired token is rejected so
// the client can drop its stale session.
func (h *Handlers) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.tokens.VerifyRequest(r)
		if errors.Is(err, auth.ErrMissingToken) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			h.rejectToken(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

// RequireUser rejects requests without a valid bearer token.
func (h *Handlers) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.tokens.VerifyRequest(r)
		if err != nil {
			h.rejectToken(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

// RequireAdmin rejects requests whose token does not carry the admin role.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.tokens.VerifyRequest(r)
		if err != nil {
			h.rejectToken(w, r, err)
			return
		}
		if !claims.IsAdmin() {
			observability.MeterFromContext(r.Context()).Count("auth.rejected", 1, sentry.WithAttributes(
				attribute.String("reason", "not_admin"),
			))
			h.loggerFromContext(r.Context()).Warn("non-admin user attempted admin route", "user_id", claims.UserID, "path", r.URL.Path)
			h.writeError(w, r, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

func (h *Handlers) rejectToken(w http.ResponseWriter, r *http.Request, err error) {
	reason := "invalid_token"
	message := "Invalid token"
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		reason = "missing_token"
		message = "Please log in to continue"
	case errors.Is(err, auth.ErrTokenExpired):
		reason = "expired_token"
		message = "Your session has expired, please log in again"
	}

	observability.MeterFromContext(r.Context()).Count("auth.rejected", 1, sentry.WithAttributes(
		attribute.String("reason", reason),
	))
	h.loggerFromContext(r.Context()).Debug("rejected bearer token", "reason", reason, "error", err)
	h.writeError(w, r, http.StatusUnauthorized, message)
}
