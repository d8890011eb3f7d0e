package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CouponStore struct {
	pool *pgxpool.Pool
}

func NewCouponStore(pool *pgxpool.Pool) *CouponStore {
	return &CouponStore{pool: pool}
}

// GetByCode looks a coupon up case-insensitively.
func (s *CouponStore) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	var c Coupon
	err := s.pool.QueryRow(ctx, `
		SELECT code, discount_percentage, active, expires_at
		FROM coupons
		WHERE UPPER(code) = $1
	`, strings.ToUpper(strings.TrimSpace(code))).Scan(&c.Code, &c.DiscountPercentage, &c.Active, &c.ExpiresAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *CouponStore) Upsert(ctx context.Context, coupon *Coupon) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO coupons (code, discount_percentage, active, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO UPDATE
		SET discount_percentage = EXCLUDED.discount_percentage, active = EXCLUDED.active,
		    expires_at = EXCLUDED.expires_at
	`, coupon.Code, coupon.DiscountPercentage, coupon.Active, coupon.ExpiresAt)
	return err
}
