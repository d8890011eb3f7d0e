package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/shopspring/decimal"

	"github.com/murshadpk/storefront/internal/cache"
	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/pricing"
)

type settingsStore interface {
	Get(ctx context.Context) (*db.Settings, error)
	Upsert(ctx context.Context, settings *db.Settings) error
}

// SettingsService serves the pricing settings through a read-through cache.
type SettingsService struct {
	store  settingsStore
	cache  cache.Provider
	ttl    time.Duration
	logger *slog.Logger
}

func NewSettingsService(store settingsStore, cacheProvider cache.Provider, ttl time.Duration, logger *slog.Logger) *SettingsService {
	return &SettingsService{store: store, cache: cacheProvider, ttl: ttl, logger: logger}
}

func (s *SettingsService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

// PricingSettings returns the current settings. A store that has never been
// configured yields all-zero settings.
func (s *SettingsService) PricingSettings(ctx context.Context) (*db.Settings, error) {
	logger := s.loggerFromContext(ctx)

	if s.cache != nil && s.ttl > 0 {
		var cached db.Settings
		err := cache.GetJSON(ctx, s.cache, cache.SettingsKey(), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			logger.Warn("settings cache read failed", "error", err)
		}
	}

	settings, err := s.store.Get(ctx)
	if errors.Is(err, db.ErrNotFound) {
		settings = &db.Settings{}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s.storeCached(ctx, settings)
	return settings, nil
}

type SettingsInput struct {
	DeliveryCharge        decimal.Decimal
	TaxPercentage         decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	CODCharge             decimal.Decimal
}

func (s *SettingsService) UpdateSettings(ctx context.Context, input SettingsInput) (*db.Settings, error) {
	span := sentry.StartSpan(
		ctx,
		"service.settings.update",
		sentry.WithOpName("service.settings"),
		sentry.WithDescription("UpdateSettings"),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	defer span.Finish()
	ctx = span.Context()

	params := pricing.Params{
		TaxRatePercent:        input.TaxPercentage,
		FreeShippingThreshold: input.FreeShippingThreshold,
		FlatDeliveryCharge:    input.DeliveryCharge,
		FlatSurcharge:         input.CODCharge,
	}
	if err := params.Validate(); err != nil {
		return nil, userError(ErrInvalidSettings, err.Error())
	}

	settings := &db.Settings{
		DeliveryCharge:        input.DeliveryCharge,
		TaxPercentage:         input.TaxPercentage,
		FreeShippingThreshold: input.FreeShippingThreshold,
		CODCharge:             input.CODCharge,
	}
	if err := s.store.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.SettingsKey()); err != nil {
			s.loggerFromContext(ctx).Warn("failed to invalidate settings cache", "error", err)
		}
	}

	s.loggerFromContext(ctx).Info("pricing settings updated",
		"delivery_charge", settings.DeliveryCharge.String(),
		"tax_percentage", settings.TaxPercentage.String(),
		"free_shipping_threshold", settings.FreeShippingThreshold.String(),
		"cod_charge", settings.CODCharge.String(),
	)
	return settings, nil
}

// PricingParams combines the store settings with a coupon discount.
func PricingParams(settings *db.Settings, discountPercent decimal.Decimal) pricing.Params {
	if settings == nil {
		settings = &db.Settings{}
	}
	return pricing.Params{
		DiscountPercent:       discountPercent,
		TaxRatePercent:        settings.TaxPercentage,
		FreeShippingThreshold: settings.FreeShippingThreshold,
		FlatDeliveryCharge:    settings.DeliveryCharge,
		FlatSurcharge:         settings.CODCharge,
	}
}

func (s *SettingsService) storeCached(ctx context.Context, settings *db.Settings) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	if err := cache.SetJSON(ctx, s.cache, cache.SettingsKey(), settings, s.ttl); err != nil {
		s.loggerFromContext(ctx).Warn("settings cache write failed", "error", err)
	}
}
