package cartstore

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const cookieName = "storefront_cart"

type contextKey string

const cartIDKey contextKey = "cart_id"

// Cookies issues and reads the cart id cookie.
type Cookies struct {
	ttl    time.Duration
	secure bool
}

func NewCookies(ttl time.Duration, secure bool) *Cookies {
	return &Cookies{ttl: ttl, secure: secure}
}

func (c *Cookies) TTL() time.Duration {
	return c.ttl
}

// Middleware makes sure every request carries a cart id, issuing a fresh
// cookie when the request has none or it is malformed.
func (c *Cookies) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := c.cartIDFromRequest(r)
		if !ok {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(c.ttl.Seconds()),
				HttpOnly: true,
				Secure:   c.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(WithCartID(r.Context(), id)))
	})
}

func (c *Cookies) cartIDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if _, err := uuid.Parse(value); err != nil {
		return "", false
	}
	return value, true
}

func WithCartID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, cartIDKey, id)
}

// CartIDFromContext returns the cart id set by Middleware.
func CartIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(cartIDKey).(string)
	return id, ok && id != ""
}
