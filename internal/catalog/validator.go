package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/murshadpk/storefront/internal/pricing"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsValidSlug accepts lowercase words joined by single hyphens.
func IsValidSlug(slug string) bool {
	return slugRegex.MatchString(slug)
}

var hundred = decimal.NewFromInt(100)

func (v *Validator) Validate(seed *SeedFile) error {
	if len(seed.Products) == 0 && len(seed.Coupons) == 0 && seed.Settings == nil {
		return fmt.Errorf("seed file is empty")
	}

	slugs := make(map[string]bool)
	for i, product := range seed.Products {
		if err := v.validateProduct(&product); err != nil {
			return fmt.Errorf("product %d validation failed: %w", i, err)
		}

		if slugs[product.Slug] {
			return fmt.Errorf("duplicate slug: %s", product.Slug)
		}
		slugs[product.Slug] = true
	}

	codes := make(map[string]bool)
	for i, coupon := range seed.Coupons {
		if err := v.validateCoupon(&coupon); err != nil {
			return fmt.Errorf("coupon %d validation failed: %w", i, err)
		}

		code := strings.ToUpper(strings.TrimSpace(coupon.Code))
		if codes[code] {
			return fmt.Errorf("duplicate coupon code: %s", code)
		}
		codes[code] = true
	}

	if seed.Settings != nil {
		params := pricing.Params{
			TaxRatePercent:        seed.Settings.TaxPercentage,
			FreeShippingThreshold: seed.Settings.FreeShippingThreshold,
			FlatDeliveryCharge:    seed.Settings.DeliveryCharge,
			FlatSurcharge:         seed.Settings.CODCharge,
		}
		if err := params.Validate(); err != nil {
			return fmt.Errorf("settings validation failed: %w", err)
		}
	}

	return nil
}

func (v *Validator) validateProduct(product *ProductSeed) error {
	if !IsValidSlug(product.Slug) {
		return fmt.Errorf("product slug %q must be lowercase words separated by hyphens", product.Slug)
	}

	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("product name is required")
	}

	if !product.Price.IsPositive() {
		return fmt.Errorf("product price must be positive")
	}

	if product.Discount.IsNegative() || product.Discount.GreaterThan(hundred) {
		return fmt.Errorf("product discount must be between 0 and 100")
	}

	if product.Stock < 0 {
		return fmt.Errorf("product stock must be zero or positive")
	}

	if err := validateVariants("size", product.Sizes); err != nil {
		return err
	}
	if err := validateSizeStock(product.Sizes, product.SizeStock); err != nil {
		return err
	}
	return validateVariants("color", product.Colors)
}

// validateSizeStock requires every tracked size to be one of the product's
// sizes. Sizes left out of the map fall back to product-level stock.
func validateSizeStock(sizes []string, counts map[string]int) error {
	known := make(map[string]bool, len(sizes))
	for _, size := range sizes {
		known[strings.TrimSpace(size)] = true
	}
	for size, n := range counts {
		if !known[strings.TrimSpace(size)] {
			return fmt.Errorf("size stock given for unknown size %q", size)
		}
		if n < 0 {
			return fmt.Errorf("stock for size %s must be zero or positive", size)
		}
	}
	return nil
}

func validateVariants(kind string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			return fmt.Errorf("%s values cannot be empty", kind)
		}
		if seen[value] {
			return fmt.Errorf("duplicate %s: %s", kind, value)
		}
		seen[value] = true
	}
	return nil
}

func (v *Validator) validateCoupon(coupon *CouponSeed) error {
	if strings.TrimSpace(coupon.Code) == "" {
		return fmt.Errorf("coupon code is required")
	}

	if !coupon.DiscountPercentage.IsPositive() || coupon.DiscountPercentage.GreaterThan(hundred) {
		return fmt.Errorf("coupon discount must be greater than 0 and at most 100")
	}

	return nil
}
