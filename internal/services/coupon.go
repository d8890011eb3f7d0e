package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/observability"
)

type couponStore interface {
	GetByCode(ctx context.Context, code string) (*db.Coupon, error)
}

type CouponService struct {
	coupons couponStore
	now     func() time.Time
	logger  *slog.Logger
}

func NewCouponService(coupons couponStore, logger *slog.Logger) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now, logger: logger}
}

func (s *CouponService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

// CouponResult mirrors what the storefront shows next to the coupon field.
// DiscountPercentage is zero unless Valid.
type CouponResult struct {
	Code               string          `json:"code,omitempty"`
	Valid              bool            `json:"valid"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Message            string          `json:"message"`
}

func invalidCoupon(message string) *CouponResult {
	return &CouponResult{Valid: false, DiscountPercentage: decimal.Zero, Message: message}
}

func (s *CouponService) ValidateCoupon(ctx context.Context, code string) (*CouponResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return invalidCoupon("Please enter a coupon code"), nil
	}

	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			observability.CountOutcome(ctx, "coupon.validate", "unknown")
			return invalidCoupon("Invalid coupon code"), nil
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}

	switch {
	case !coupon.Active:
		observability.CountOutcome(ctx, "coupon.validate", "inactive")
		return invalidCoupon("This coupon is no longer active"), nil
	case coupon.ExpiresAt != nil && !s.now().Before(*coupon.ExpiresAt):
		observability.CountOutcome(ctx, "coupon.validate", "expired")
		return invalidCoupon("This coupon has expired"), nil
	case coupon.DiscountPercentage.IsNegative() || coupon.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)):
		s.loggerFromContext(ctx).Warn("coupon has out of range discount", "code", coupon.Code, "discount", coupon.DiscountPercentage.String())
		observability.CountOutcome(ctx, "coupon.validate", "misconfigured")
		return invalidCoupon("Invalid coupon code"), nil
	}

	observability.CountOutcome(ctx, "coupon.validate", "valid")
	return &CouponResult{
		Code:               coupon.Code,
		Valid:              true,
		DiscountPercentage: coupon.DiscountPercentage,
		Message:            fmt.Sprintf("Coupon applied! You get a discount of %s%%", coupon.DiscountPercentage.String()),
	}, nil
}
