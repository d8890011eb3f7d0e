package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsStore struct {
	pool *pgxpool.Pool
}

func NewSettingsStore(pool *pgxpool.Pool) *SettingsStore {
	return &SettingsStore{pool: pool}
}

// Get returns the single settings row or ErrNotFound when none was saved yet.
func (s *SettingsStore) Get(ctx context.Context) (*Settings, error) {
	var settings Settings
	err := s.pool.QueryRow(ctx, `
		SELECT delivery_charge, tax_percentage, free_shipping_threshold, cod_charge, updated_at
		FROM settings
		WHERE id = 1
	`).Scan(
		&settings.DeliveryCharge, &settings.TaxPercentage, &settings.FreeShippingThreshold,
		&settings.CODCharge, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &settings, nil
}

func (s *SettingsStore) Upsert(ctx context.Context, settings *Settings) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO settings (id, delivery_charge, tax_percentage, free_shipping_threshold, cod_charge)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET delivery_charge = EXCLUDED.delivery_charge, tax_percentage = EXCLUDED.tax_percentage,
		    free_shipping_threshold = EXCLUDED.free_shipping_threshold, cod_charge = EXCLUDED.cod_charge,
		    updated_at = NOW()
		RETURNING updated_at
	`, settings.DeliveryCharge, settings.TaxPercentage, settings.FreeShippingThreshold, settings.CODCharge,
	).Scan(&settings.UpdatedAt)
}
