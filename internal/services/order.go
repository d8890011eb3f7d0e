package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/observability"
)

type orderReader interface {
	GetByID(ctx context.Context, orderID int64) (*db.Order, error)
}

// OrderService serves stored orders back to customers and admins.
type OrderService struct {
	orders orderReader
	logger *slog.Logger
}

func NewOrderService(orders orderReader, logger *slog.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

func (s *OrderService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

// TrackOrder returns the order only when email matches the address it was
// placed with. A mismatch is reported as not found so order ids cannot be
// probed.
func (s *OrderService) TrackOrder(ctx context.Context, orderID int64, email string) (*db.Order, error) {
	email = strings.TrimSpace(email)
	if orderID <= 0 || email == "" {
		return nil, userError(ErrInvalidOrderLookup, "Order ID and email are required")
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.CustomerEmail, email) {
		observability.CountOutcome(ctx, "order.track", "email_mismatch")
		s.loggerFromContext(ctx).Debug("order tracking email mismatch", "order_id", orderID)
		return nil, ErrOrderNotFound
	}

	observability.CountOutcome(ctx, "order.track", "found")
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*db.Order, error) {
	if orderID <= 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}
