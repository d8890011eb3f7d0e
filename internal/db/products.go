package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductStore struct {
	pool *pgxpool.Pool
}

func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `id, slug, name, description, category, price, discount, stock, image_url, created_at, updated_at`

func (s *ProductStore) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	product, err := scanProduct(row)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.loadVariants(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.loadVariants(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductStore) GetName(ctx context.Context, id int64) (string, error) {
	var name string
	if err := s.pool.QueryRow(ctx, `SELECT name FROM products WHERE id = $1`, id).Scan(&name); err != nil {
		return "", notFound(err)
	}
	return name, nil
}

// ListRelated returns up to limit products in category, newest first,
// excluding excludeID. Variants are not loaded.
func (s *ProductStore) ListRelated(ctx context.Context, category string, excludeID int64, limit int) ([]*Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE category = $1 AND id <> $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, category, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*Product, 0, limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// Upsert inserts or updates a product by slug and replaces its size and
// colour options.
func (s *ProductStore) Upsert(ctx context.Context, product *Product) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO products (slug, name, description, category, price, discount, stock, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (slug) DO UPDATE
			SET name = EXCLUDED.name, description = EXCLUDED.description, category = EXCLUDED.category,
			    price = EXCLUDED.price, discount = EXCLUDED.discount, stock = EXCLUDED.stock,
			    image_url = EXCLUDED.image_url, updated_at = NOW()
			RETURNING id, created_at, updated_at
		`, product.Slug, product.Name, product.Description, product.Category, product.Price,
			product.Discount, product.Stock, product.ImageURL,
		).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", product.Slug, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM product_sizes WHERE product_id = $1`, product.ID); err != nil {
			return err
		}
		for i, size := range product.Sizes {
			var stock *int
			if n, ok := product.SizeStock[size]; ok {
				stock = &n
			}
			if _, err := tx.Exec(ctx, `INSERT INTO product_sizes (product_id, size, position, stock) VALUES ($1, $2, $3, $4)`, product.ID, size, i, stock); err != nil {
				return fmt.Errorf("insert size %s: %w", size, err)
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM product_colors WHERE product_id = $1`, product.ID); err != nil {
			return err
		}
		for i, color := range product.Colors {
			if _, err := tx.Exec(ctx, `INSERT INTO product_colors (product_id, color, position) VALUES ($1, $2, $3)`, product.ID, color, i); err != nil {
				return fmt.Errorf("insert color %s: %w", color, err)
			}
		}
		return nil
	})
}

type sizeRow struct {
	Size  string
	Stock *int
}

func (s *ProductStore) loadVariants(ctx context.Context, product *Product) error {
	rows, err := s.pool.Query(ctx, `SELECT size, stock FROM product_sizes WHERE product_id = $1 ORDER BY position, size`, product.ID)
	if err != nil {
		return fmt.Errorf("load sizes: %w", err)
	}
	variants, err := pgx.CollectRows(rows, pgx.RowToStructByPos[sizeRow])
	if err != nil {
		return fmt.Errorf("load sizes: %w", err)
	}
	sizes := make([]string, 0, len(variants))
	var sizeStock map[string]int
	for _, v := range variants {
		sizes = append(sizes, v.Size)
		if v.Stock == nil {
			continue
		}
		if sizeStock == nil {
			sizeStock = make(map[string]int)
		}
		sizeStock[v.Size] = *v.Stock
	}
	colors, err := s.collectStrings(ctx, `SELECT color FROM product_colors WHERE product_id = $1 ORDER BY position, color`, product.ID)
	if err != nil {
		return fmt.Errorf("load colors: %w", err)
	}
	product.Sizes = sizes
	product.SizeStock = sizeStock
	product.Colors = colors
	return nil
}

func (s *ProductStore) collectStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	if err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.Category, &p.Price, &p.Discount,
		&p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
