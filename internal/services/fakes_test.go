package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/pricing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

type fakeProducts struct {
	byID map[int64]*db.Product
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*db.Product, error) {
	product, ok := f.byID[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProducts) GetName(_ context.Context, id int64) (string, error) {
	product, ok := f.byID[id]
	if !ok {
		return "", db.ErrNotFound
	}
	return product.Name, nil
}

type memoryCarts struct {
	mu      sync.Mutex
	carts   map[string]pricing.Cart
	cleared []string
}

func newMemoryCarts() *memoryCarts {
	return &memoryCarts{carts: map[string]pricing.Cart{}}
}

func (m *memoryCarts) GetCart(_ context.Context, id string) (pricing.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.carts[id].Clone(), nil
}

func (m *memoryCarts) ClearCart(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, id)
	m.cleared = append(m.cleared, id)
	return nil
}

type fakeCoupons struct {
	byCode map[string]*db.Coupon
}

func (f *fakeCoupons) GetByCode(_ context.Context, code string) (*db.Coupon, error) {
	coupon, ok := f.byCode[code]
	if !ok {
		return nil, db.ErrNotFound
	}
	return coupon, nil
}

type staticSettings struct {
	settings *db.Settings
}

func (s staticSettings) PricingSettings(context.Context) (*db.Settings, error) {
	return s.settings, nil
}

type fakeOrders struct {
	created []*db.Order
	err     error
}

func (f *fakeOrders) CreateWithItems(_ context.Context, order *db.Order) error {
	if f.err != nil {
		return f.err
	}
	order.ID = int64(len(f.created) + 1)
	f.created = append(f.created, order)
	return nil
}

type recordingEmailer struct {
	confirmations []*db.Order
	summaries     [][]pricing.Line
	shipments     []ShipmentEmailInput
	err           error
}

func (r *recordingEmailer) SendOrderConfirmation(_ context.Context, order *db.Order, summary []pricing.Line) error {
	r.confirmations = append(r.confirmations, order)
	r.summaries = append(r.summaries, summary)
	return r.err
}

func (r *recordingEmailer) SendShipmentUpdate(_ context.Context, input ShipmentEmailInput) error {
	r.shipments = append(r.shipments, input)
	return r.err
}

var errBoom = errors.New("boom")
