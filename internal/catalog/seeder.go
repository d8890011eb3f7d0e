package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/murshadpk/storefront/internal/models"
)

type productUpserter interface {
	Upsert(ctx context.Context, product *models.Product) error
}

type couponUpserter interface {
	Upsert(ctx context.Context, coupon *models.Coupon) error
}

type settingsUpserter interface {
	Upsert(ctx context.Context, settings *models.Settings) error
}

type SeedResult struct {
	Products int
	Coupons  int
	Settings bool
}

// Seeder validates a seed file and writes it through the stores. Rows are
// matched by slug and coupon code, so seeding the same file twice is safe.
type Seeder struct {
	products  productUpserter
	coupons   couponUpserter
	settings  settingsUpserter
	validator *Validator
	logger    *slog.Logger
}

func NewSeeder(products productUpserter, coupons couponUpserter, settings settingsUpserter, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		products:  products,
		coupons:   coupons,
		settings:  settings,
		validator: NewValidator(),
		logger:    logger,
	}
}

func (s *Seeder) Apply(ctx context.Context, seed *SeedFile) (*SeedResult, error) {
	if seed == nil {
		return nil, fmt.Errorf("seed file is required")
	}
	if err := s.validator.Validate(seed); err != nil {
		return nil, err
	}

	result := &SeedResult{}
	for _, item := range seed.Products {
		product := &models.Product{
			Slug:        item.Slug,
			Name:        strings.TrimSpace(item.Name),
			Description: item.Description,
			Category:    strings.TrimSpace(item.Category),
			Price:       item.Price,
			Discount:    item.Discount,
			Stock:       item.Stock,
			ImageURL:    item.ImageURL,
			Sizes:       trimAll(item.Sizes),
			Colors:      trimAll(item.Colors),
			SizeStock:   trimKeys(item.SizeStock),
		}
		if err := s.products.Upsert(ctx, product); err != nil {
			return result, fmt.Errorf("failed to seed product %s: %w", item.Slug, err)
		}
		s.logger.Debug("seeded product", "slug", product.Slug, "product_id", product.ID)
		result.Products++
	}

	for _, item := range seed.Coupons {
		coupon := &models.Coupon{
			Code:               strings.ToUpper(strings.TrimSpace(item.Code)),
			DiscountPercentage: item.DiscountPercentage,
			Active:             item.IsActive(),
			ExpiresAt:          item.ExpiresAt,
		}
		if err := s.coupons.Upsert(ctx, coupon); err != nil {
			return result, fmt.Errorf("failed to seed coupon %s: %w", coupon.Code, err)
		}
		result.Coupons++
	}

	if seed.Settings != nil {
		settings := &models.Settings{
			DeliveryCharge:        seed.Settings.DeliveryCharge,
			TaxPercentage:         seed.Settings.TaxPercentage,
			FreeShippingThreshold: seed.Settings.FreeShippingThreshold,
			CODCharge:             seed.Settings.CODCharge,
		}
		if err := s.settings.Upsert(ctx, settings); err != nil {
			return result, fmt.Errorf("failed to seed settings: %w", err)
		}
		result.Settings = true
	}

	s.logger.Info("seed applied", "products", result.Products, "coupons", result.Coupons, "settings", result.Settings)
	return result, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, strings.TrimSpace(value))
	}
	return out
}

func trimKeys(counts map[string]int) map[string]int {
	if len(counts) == 0 {
		return nil
	}
	out := make(map[string]int, len(counts))
	for key, n := range counts {
		out[strings.TrimSpace(key)] = n
	}
	return out
}
