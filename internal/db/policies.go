package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PolicyStore struct {
	pool *pgxpool.Pool
}

func NewPolicyStore(pool *pgxpool.Pool) *PolicyStore {
	return &PolicyStore{pool: pool}
}

func (s *PolicyStore) ListShippingPolicies(ctx context.Context) ([]*ShippingPolicy, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, description, text, created_at, updated_at
		FROM shipping_policies
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	policies := []*ShippingPolicy{}
	for rows.Next() {
		var p ShippingPolicy
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Text, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		policies = append(policies, &p)
	}
	return policies, rows.Err()
}

func (s *PolicyStore) CreateShippingPolicy(ctx context.Context, policy *ShippingPolicy) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO shipping_policies (title, description, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, policy.Title, policy.Description, policy.Text).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)
}

func (s *PolicyStore) UpdateShippingPolicy(ctx context.Context, policy *ShippingPolicy) error {
	err := s.pool.QueryRow(ctx, `
		UPDATE shipping_policies
		SET title = $1, description = $2, text = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING created_at, updated_at
	`, policy.Title, policy.Description, policy.Text, policy.ID).Scan(&policy.CreatedAt, &policy.UpdatedAt)
	return notFound(err)
}

func (s *PolicyStore) GetReturnPolicy(ctx context.Context) (*ReturnPolicy, error) {
	var p ReturnPolicy
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, text, updated_at FROM return_policies WHERE id = 1
	`).Scan(&p.ID, &p.Title, &p.Text, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *PolicyStore) UpsertReturnPolicy(ctx context.Context, policy *ReturnPolicy) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO return_policies (id, title, text)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, text = EXCLUDED.text, updated_at = NOW()
		RETURNING id, updated_at
	`, policy.Title, policy.Text).Scan(&policy.ID, &policy.UpdatedAt)
}
