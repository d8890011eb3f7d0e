package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/murshadpk/storefront/internal/cache"
	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/pricing"
)

type fakeSettingsStore struct {
	settings *db.Settings
	gets     int
	err      error
}

func (f *fakeSettingsStore) Get(context.Context) (*db.Settings, error) {
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	if f.settings == nil {
		return nil, db.ErrNotFound
	}
	copied := *f.settings
	return &copied, nil
}

func (f *fakeSettingsStore) Upsert(_ context.Context, settings *db.Settings) error {
	copied := *settings
	f.settings = &copied
	return nil
}

func newSettingsService(t *testing.T, store *fakeSettingsStore) *SettingsService {
	t.Helper()

	provider, err := cache.NewMemoryProvider()
	if err != nil {
		t.Fatalf("NewMemoryProvider() error = %v", err)
	}
	t.Cleanup(func() { _ = provider.Close() })
	return NewSettingsService(store, provider, time.Minute, testLogger())
}

func TestSettingsService_PricingSettingsReadsThroughCache(t *testing.T) {
	t.Parallel()

	store := &fakeSettingsStore{settings: &db.Settings{DeliveryCharge: dec("20"), TaxPercentage: dec("5")}}
	svc := newSettingsService(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := svc.PricingSettings(ctx)
		if err != nil {
			t.Fatalf("PricingSettings() error = %v", err)
		}
		if !got.DeliveryCharge.Equal(dec("20")) {
			t.Fatalf("DeliveryCharge = %s, want 20", got.DeliveryCharge)
		}
	}
	if store.gets != 1 {
		t.Fatalf("expected 1 store read, got %d", store.gets)
	}
}

func TestSettingsService_MissingRowYieldsZeroSettings(t *testing.T) {
	t.Parallel()

	svc := newSettingsService(t, &fakeSettingsStore{})
	got, err := svc.PricingSettings(context.Background())
	if err != nil {
		t.Fatalf("PricingSettings() error = %v", err)
	}
	if !got.DeliveryCharge.IsZero() || !got.TaxPercentage.IsZero() || !got.CODCharge.IsZero() {
		t.Fatalf("expected zero settings, got %+v", got)
	}
}

func TestSettingsService_StoreFailure(t *testing.T) {
	t.Parallel()

	svc := newSettingsService(t, &fakeSettingsStore{err: errBoom})
	if _, err := svc.PricingSettings(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("PricingSettings() error = %v, want errBoom", err)
	}
}

func TestSettingsService_UpdateInvalidatesCache(t *testing.T) {
	t.Parallel()

	store := &fakeSettingsStore{settings: &db.Settings{DeliveryCharge: dec("20")}}
	svc := newSettingsService(t, store)
	ctx := context.Background()

	if _, err := svc.PricingSettings(ctx); err != nil {
		t.Fatalf("PricingSettings() error = %v", err)
	}
	if _, err := svc.UpdateSettings(ctx, SettingsInput{
		DeliveryCharge:        dec("25"),
		TaxPercentage:         dec("8"),
		FreeShippingThreshold: dec("500"),
		CODCharge:             dec("15"),
	}); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}

	got, err := svc.PricingSettings(ctx)
	if err != nil {
		t.Fatalf("PricingSettings() error = %v", err)
	}
	if !got.DeliveryCharge.Equal(dec("25")) {
		t.Fatalf("DeliveryCharge = %s, want 25 after update", got.DeliveryCharge)
	}
	if store.gets != 2 {
		t.Fatalf("expected cache miss after update, store reads = %d", store.gets)
	}
}

func TestSettingsService_UpdateRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input SettingsInput
	}{
		{name: "tax above 100", input: SettingsInput{TaxPercentage: dec("101")}},
		{name: "negative delivery", input: SettingsInput{DeliveryCharge: dec("-1")}},
		{name: "negative threshold", input: SettingsInput{FreeShippingThreshold: dec("-5")}},
		{name: "negative cod", input: SettingsInput{CODCharge: dec("-0.5")}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeSettingsStore{}
			svc := newSettingsService(t, store)
			_, err := svc.UpdateSettings(context.Background(), tt.input)
			if !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("UpdateSettings() error = %v, want ErrInvalidSettings", err)
			}
			if store.settings != nil {
				t.Fatalf("expected nothing to be saved")
			}
		})
	}
}

func TestPricingParams(t *testing.T) {
	t.Parallel()

	params := PricingParams(&db.Settings{
		DeliveryCharge:        dec("20"),
		TaxPercentage:         dec("5"),
		FreeShippingThreshold: dec("150"),
		CODCharge:             dec("10"),
	}, dec("10"))

	want := pricing.Params{
		DiscountPercent:       dec("10"),
		TaxRatePercent:        dec("5"),
		FreeShippingThreshold: dec("150"),
		FlatDeliveryCharge:    dec("20"),
		FlatSurcharge:         dec("10"),
	}
	if !params.DiscountPercent.Equal(want.DiscountPercent) ||
		!params.TaxRatePercent.Equal(want.TaxRatePercent) ||
		!params.FreeShippingThreshold.Equal(want.FreeShippingThreshold) ||
		!params.FlatDeliveryCharge.Equal(want.FlatDeliveryCharge) ||
		!params.FlatSurcharge.Equal(want.FlatSurcharge) {
		t.Fatalf("PricingParams() = %+v, want %+v", params, want)
	}

	if zero := PricingParams(nil, dec("0")); !zero.FlatDeliveryCharge.IsZero() {
		t.Fatalf("expected zero params for nil settings, got %+v", zero)
	}
}
