package cartstore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/murshadpk/storefront/internal/pricing"
)

func TestNewStore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider string
		wantErr  bool
	}{
		{name: "default provider", provider: "", wantErr: false},
		{name: "memory provider", provider: "memory", wantErr: false},
		{name: "unsupported provider", provider: "unsupported", wantErr: true},
		{name: "redis without client", provider: "redis", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, err := NewStore(Config{Provider: tt.provider})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if store == nil {
				t.Fatalf("expected store, got nil")
			}
			if err := store.Close(); err != nil {
				t.Fatalf("expected close without error, got %v", err)
			}
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	size := "M"
	cart := pricing.Cart{{ProductID: 1, SelectedSize: &size, Quantity: 2, UnitPrice: decimal.NewFromInt(50)}}

	if err := store.Set(ctx, "cart-1", cart, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	cart[0].Quantity = 99
	size = "XL"

	got, err := store.Get(ctx, "cart-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got[0].Quantity != 2 || *got[0].SelectedSize != "M" {
		t.Fatalf("stored cart changed through caller reference: %+v", got[0])
	}

	got[0].Quantity = 7
	again, err := store.Get(ctx, "cart-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if again[0].Quantity != 2 {
		t.Fatalf("stored cart changed through returned value: %+v", again[0])
	}
}

func TestMemoryStoreExpiryAndDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Set(ctx, "cart-1", pricing.Cart{{ProductID: 1, Quantity: 1}}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "cart-2", pricing.Cart{{ProductID: 2, Quantity: 1}}, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "cart-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}

	if err := store.Delete(ctx, "cart-2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "cart-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	add := func(cart pricing.Cart) (pricing.Cart, error) {
		return pricing.AddOrMerge(cart, pricing.LineItem{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(10)})
	}

	for i := 0; i < 2; i++ {
		if _, err := store.Update(ctx, "cart-1", time.Hour, add); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}
	got, err := store.Get(ctx, "cart-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 1 || got[0].Quantity != 2 {
		t.Fatalf("Update() stored %+v, want one line with quantity 2", got)
	}

	errFull := errors.New("full")
	_, err = store.Update(ctx, "cart-1", time.Hour, func(cart pricing.Cart) (pricing.Cart, error) {
		cart[0].Quantity = 50
		return nil, errFull
	})
	if !errors.Is(err, errFull) {
		t.Fatalf("Update() error = %v, want %v", err, errFull)
	}
	got, err = store.Get(ctx, "cart-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got[0].Quantity != 2 {
		t.Fatalf("failed Update() changed stored cart: %+v", got[0])
	}
}

func TestMemoryStoreUpdateStartsEmpty(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	var seen pricing.Cart
	_, err := store.Update(context.Background(), "new", time.Hour, func(cart pricing.Cart) (pricing.Cart, error) {
		seen = cart
		return cart, nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if seen == nil || len(seen) != 0 {
		t.Fatalf("Update() passed %#v, want empty non-nil cart", seen)
	}
}

func TestCookiesMiddlewareIssuesCartID(t *testing.T) {
	t.Parallel()

	cookies := NewCookies(time.Hour, true)
	var seen string
	handler := cookies.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := CartIDFromContext(r.Context())
		if !ok {
			t.Fatalf("expected cart id in context")
		}
		seen = id
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	resp := rec.Result()
	defer resp.Body.Close()
	if len(resp.Cookies()) != 1 {
		t.Fatalf("expected one cookie, got %d", len(resp.Cookies()))
	}
	issued := resp.Cookies()[0]
	if issued.Name != cookieName || issued.Value != seen {
		t.Fatalf("cookie = %s=%s, want %s=%s", issued.Name, issued.Value, cookieName, seen)
	}
	if !issued.HttpOnly || !issued.Secure {
		t.Fatalf("expected HttpOnly and Secure cookie, got %+v", issued)
	}
}

func TestCookiesMiddlewareReusesValidCartID(t *testing.T) {
	t.Parallel()

	cookies := NewCookies(time.Hour, false)
	const existing = "0b3c9f6e-4a53-4c39-9df4-7d1f0f2b2e11"

	tests := []struct {
		name       string
		value      string
		wantReused bool
	}{
		{name: "valid id", value: existing, wantReused: true},
		{name: "malformed id", value: "not-a-uuid", wantReused: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			handler := cookies.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = CartIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			req.AddCookie(&http.Cookie{Name: cookieName, Value: tt.value})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if reused := seen == tt.value; reused != tt.wantReused {
				t.Fatalf("cart id reused = %v, want %v (seen %q)", reused, tt.wantReused, seen)
			}
			if tt.wantReused && len(rec.Result().Cookies()) != 0 {
				t.Fatalf("expected no new cookie for a valid cart id")
			}
		})
	}
}
