package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/murshadpk/storefront/internal/cartstore"
	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/observability"
	"github.com/murshadpk/storefront/internal/pricing"
)

type productByID interface {
	GetByID(ctx context.Context, id int64) (*db.Product, error)
}

type CartService struct {
	products productByID
	store    cartstore.Store
	ttl      time.Duration
	logger   *slog.Logger
}

func NewCartService(products productByID, store cartstore.Store, ttl time.Duration, logger *slog.Logger) *CartService {
	return &CartService{products: products, store: store, ttl: ttl, logger: logger}
}

func (s *CartService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

type AddToCartInput struct {
	ProductID int64
	Quantity  int
	Size      *string
	Color     *string
}

// AddToCart checks stock and variant selection against the product, prices
// the line at the discounted price and merges it into the stored cart.
func (s *CartService) AddToCart(ctx context.Context, cartID string, input AddToCartInput) (pricing.Cart, error) {
	span := sentry.StartSpan(
		ctx,
		"service.cart.add",
		sentry.WithOpName("service.cart"),
		sentry.WithDescription("AddToCart"),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	defer span.Finish()
	ctx = span.Context()

	if cartID == "" {
		return nil, fmt.Errorf("cart id is required")
	}
	if input.ProductID <= 0 {
		return nil, userError(ErrInvalidCartInput, "Product is required")
	}
	if input.Quantity < 1 {
		return nil, userError(ErrInvalidCartInput, "Quantity must be at least 1")
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if product.Stock <= 0 {
		observability.CountOutcome(ctx, "cart.add", "out_of_stock")
		return nil, ErrOutOfStock
	}

	size, err := selectVariant(product.Sizes, input.Size, "size")
	if err != nil {
		return nil, err
	}
	if size != nil {
		if left, tracked := product.SizeStock[*size]; tracked && left <= 0 {
			observability.CountOutcome(ctx, "cart.add", "size_out_of_stock")
			return nil, userError(ErrOutOfStock, fmt.Sprintf("Size %s is out of stock", *size))
		}
	}
	color, err := selectVariant(product.Colors, input.Color, "color")
	if err != nil {
		return nil, err
	}

	unitPrice, err := pricing.DiscountedPrice(product.Price, product.Discount)
	if err != nil {
		return nil, fmt.Errorf("product %d has invalid pricing: %w", product.ID, err)
	}
	line := pricing.LineItem{
		ProductID:       product.ID,
		SelectedSize:    size,
		SelectedColor:   color,
		Quantity:        input.Quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: product.Discount,
		Name:            product.Name,
		ImageURL:        product.ImageURL,
	}

	// The stock check runs against the cart the store is about to replace,
	// so two concurrent adds cannot both pass it.
	next, err := s.store.Update(ctx, cartID, s.ttl, func(cart pricing.Cart) (pricing.Cart, error) {
		inCart := 0
		for _, item := range cart {
			if item.ProductID == product.ID {
				inCart += item.Quantity
			}
		}
		if inCart+input.Quantity > product.Stock {
			return nil, ErrExceedsStock
		}
		return pricing.AddOrMerge(cart, line)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrExceedsStock):
			observability.CountOutcome(ctx, "cart.add", "exceeds_stock")
			return nil, err
		case pricing.IsValidationError(err):
			return nil, err
		}
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	observability.CountOutcome(ctx, "cart.add", "success")
	s.loggerFromContext(ctx).Debug("cart updated", "product_id", product.ID, "lines", len(next), "items", next.ItemCount())
	return next, nil
}

// GetCart returns the stored cart, or an empty cart when none exists.
func (s *CartService) GetCart(ctx context.Context, cartID string) (pricing.Cart, error) {
	cart, err := s.store.Get(ctx, cartID)
	if errors.Is(err, cartstore.ErrNotFound) {
		return pricing.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		cart = pricing.Cart{}
	}
	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	if err := s.store.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// selectVariant enforces that a choice is made when the product offers
// options, and that the choice is one of them. Products without options
// ignore any selection.
func selectVariant(options []string, selected *string, name string) (*string, error) {
	if len(options) == 0 {
		return nil, nil
	}
	if selected == nil || strings.TrimSpace(*selected) == "" {
		return nil, ErrVariantRequired
	}
	value := strings.TrimSpace(*selected)
	if !slices.Contains(options, value) {
		return nil, userError(ErrInvalidCartInput, fmt.Sprintf("Unknown %s %q", name, value))
	}
	return &value, nil
}
