package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/shopspring/decimal"

	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/pricing"
)

const (
	relatedProductLimit = 4
	unknownProductName  = "Unknown Product"
)

type productReader interface {
	GetBySlug(ctx context.Context, slug string) (*db.Product, error)
	GetName(ctx context.Context, id int64) (string, error)
	ListRelated(ctx context.Context, category string, excludeID int64, limit int) ([]*db.Product, error)
}

type CatalogService struct {
	products productReader
	logger   *slog.Logger
}

func NewCatalogService(products productReader, logger *slog.Logger) *CatalogService {
	return &CatalogService{products: products, logger: logger}
}

func (s *CatalogService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

type ProductDetail struct {
	Product         *db.Product     `json:"product"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	Related         []*db.Product   `json:"relatedProducts"`
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	span := sentry.StartSpan(
		ctx,
		"service.catalog.get_product",
		sentry.WithOpName("service.catalog"),
		sentry.WithDescription("GetProductBySlug"),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	defer span.Finish()
	ctx = span.Context()

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}

	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product %s: %w", slug, err)
	}

	discounted, err := pricing.DiscountedPrice(product.Price, product.Discount)
	if err != nil {
		return nil, fmt.Errorf("product %s has invalid pricing: %w", slug, err)
	}

	related := []*db.Product{}
	if product.Category != "" {
		related, err = s.products.ListRelated(ctx, product.Category, product.ID, relatedProductLimit)
		if err != nil {
			s.loggerFromContext(ctx).Warn("failed to load related products", "error", err, "product_id", product.ID)
			related = []*db.Product{}
		}
	}

	return &ProductDetail{
		Product:         product,
		DiscountedPrice: discounted,
		Related:         related,
	}, nil
}

func (s *CatalogService) GetProductName(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", ErrProductNotFound
	}
	name, err := s.products.GetName(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrProductNotFound
		}
		return "", fmt.Errorf("failed to load product name: %w", err)
	}
	return name, nil
}
