package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"
	"github.com/microcosm-cc/bluemonday"

	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/observability"
)

type userLister interface {
	List(ctx context.Context) ([]*db.User, error)
}

type policyStore interface {
	ListShippingPolicies(ctx context.Context) ([]*db.ShippingPolicy, error)
	CreateShippingPolicy(ctx context.Context, policy *db.ShippingPolicy) error
	UpdateShippingPolicy(ctx context.Context, policy *db.ShippingPolicy) error
	GetReturnPolicy(ctx context.Context) (*db.ReturnPolicy, error)
	UpsertReturnPolicy(ctx context.Context, policy *db.ReturnPolicy) error
}

type shippingUpdater interface {
	UpdateShipping(ctx context.Context, orderID int64, update db.ShipmentUpdate) error
}

type AdminService struct {
	users        userLister
	policies     policyStore
	orders       shippingUpdater
	orderEmailer OrderEmailSender
	sanitizer    *bluemonday.Policy
	logger       *slog.Logger
}

func NewAdminService(users userLister, policies policyStore, orders shippingUpdater, orderEmailer OrderEmailSender, logger *slog.Logger) *AdminService {
	if orderEmailer == nil {
		orderEmailer = noopOrderEmailSender{}
	}
	return &AdminService{
		users:        users,
		policies:     policies,
		orders:       orders,
		orderEmailer: orderEmailer,
		sanitizer:    bluemonday.UGCPolicy(),
		logger:       logger,
	}
}

func (s *AdminService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

func (s *AdminService) ListCustomers(ctx context.Context) ([]*db.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

type ShippingPolicyInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Text        string `json:"text" validate:"required"`
}

func (s *AdminService) ListShippingPolicies(ctx context.Context) ([]*db.ShippingPolicy, error) {
	policies, err := s.policies.ListShippingPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping policies: %w", err)
	}
	return policies, nil
}

func (s *AdminService) CreateShippingPolicy(ctx context.Context, input ShippingPolicyInput) (*db.ShippingPolicy, error) {
	policy, err := s.shippingPolicyFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.policies.CreateShippingPolicy(ctx, policy); err != nil {
		return nil, fmt.Errorf("failed to create shipping policy: %w", err)
	}
	s.loggerFromContext(ctx).Info("shipping policy created", "policy_id", policy.ID)
	return policy, nil
}

func (s *AdminService) UpdateShippingPolicy(ctx context.Context, id int64, input ShippingPolicyInput) (*db.ShippingPolicy, error) {
	if id <= 0 {
		return nil, ErrPolicyNotFound
	}
	policy, err := s.shippingPolicyFromInput(input)
	if err != nil {
		return nil, err
	}
	policy.ID = id
	if err := s.policies.UpdateShippingPolicy(ctx, policy); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to update shipping policy: %w", err)
	}
	s.loggerFromContext(ctx).Info("shipping policy updated", "policy_id", policy.ID)
	return policy, nil
}

func (s *AdminService) shippingPolicyFromInput(input ShippingPolicyInput) (*db.ShippingPolicy, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Text = strings.TrimSpace(s.sanitizer.Sanitize(input.Text))
	if err := inputValidator.Struct(input); err != nil {
		return nil, userError(ErrInvalidPolicy, validationMessage(err))
	}
	return &db.ShippingPolicy{
		Title:       input.Title,
		Description: input.Description,
		Text:        input.Text,
	}, nil
}

type ReturnPolicyInput struct {
	Title string `json:"title" validate:"required,max=200"`
	Text  string `json:"text" validate:"required"`
}

func (s *AdminService) GetReturnPolicy(ctx context.Context) (*db.ReturnPolicy, error) {
	policy, err := s.policies.GetReturnPolicy(ctx)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to load return policy: %w", err)
	}
	return policy, nil
}

func (s *AdminService) SaveReturnPolicy(ctx context.Context, input ReturnPolicyInput) (*db.ReturnPolicy, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Text = strings.TrimSpace(s.sanitizer.Sanitize(input.Text))
	if err := inputValidator.Struct(input); err != nil {
		return nil, userError(ErrInvalidPolicy, validationMessage(err))
	}

	policy := &db.ReturnPolicy{Title: input.Title, Text: input.Text}
	if err := s.policies.UpsertReturnPolicy(ctx, policy); err != nil {
		return nil, fmt.Errorf("failed to save return policy: %w", err)
	}
	s.loggerFromContext(ctx).Info("return policy saved")
	return policy, nil
}

type ShippingUpdateInput struct {
	Email          string
	OrderID        string
	ShippingMethod string
	ShippingTerms  string
	ShipmentDate   string
	DeliveryDate   string
}

// UpdateShipping records dispatch details on an order and notifies the
// customer. Email delivery failures are logged and do not fail the update.
func (s *AdminService) UpdateShipping(ctx context.Context, input ShippingUpdateInput) error {
	span := sentry.StartSpan(
		ctx,
		"service.admin.update_shipping",
		sentry.WithOpName("service.admin"),
		sentry.WithDescription("UpdateShipping"),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	defer span.Finish()
	ctx = span.Context()

	logger := s.loggerFromContext(ctx)
	meter := observability.MeterFromContext(ctx)
	meter.Count("fulfillment.shipment.received", 1)
	recordFailed := func(reason string) {
		meter.Count("fulfillment.shipment.failed", 1, sentry.WithAttributes(
			attribute.String("reason", reason),
		))
	}

	fields := []*string{&input.Email, &input.OrderID, &input.ShippingMethod, &input.ShippingTerms, &input.ShipmentDate, &input.DeliveryDate}
	for _, field := range fields {
		*field = strings.TrimSpace(*field)
		if *field == "" {
			recordFailed("missing_fields")
			return userError(ErrInvalidShippingInput, "All fields are required")
		}
	}

	orderID, err := strconv.ParseInt(input.OrderID, 10, 64)
	if err != nil || orderID <= 0 {
		recordFailed("invalid_order_id")
		return userError(ErrInvalidShippingInput, "Invalid order ID")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		recordFailed("invalid_email")
		return userError(ErrInvalidShippingInput, "Invalid email address")
	}
	shipmentDate, err := ParseShippingDate(input.ShipmentDate)
	if err != nil {
		recordFailed("invalid_date")
		return userError(ErrInvalidShippingInput, "Invalid shipment date")
	}
	deliveryDate, err := ParseShippingDate(input.DeliveryDate)
	if err != nil {
		recordFailed("invalid_date")
		return userError(ErrInvalidShippingInput, "Invalid delivery date")
	}
	if deliveryDate.Before(shipmentDate) {
		recordFailed("invalid_date")
		return userError(ErrInvalidShippingInput, "Delivery date cannot be before shipment date")
	}

	update := db.ShipmentUpdate{
		ShippingMethod: NormalizeShippingMethod(input.ShippingMethod),
		ShippingTerms:  input.ShippingTerms,
		ShipmentDate:   shipmentDate,
		DeliveryDate:   deliveryDate,
	}
	if err := s.orders.UpdateShipping(ctx, orderID, update); err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			recordFailed("order_not_found")
			return ErrOrderNotFound
		case errors.Is(err, db.ErrInvalidStatusTransition):
			recordFailed("invalid_order_status")
			return fmt.Errorf("%w: %v", ErrOrderStatusConflict, err)
		default:
			recordFailed("update_failed")
			return fmt.Errorf("failed to update shipping: %w", err)
		}
	}

	if err := s.orderEmailer.SendShipmentUpdate(ctx, ShipmentEmailInput{
		OrderID:        orderID,
		CustomerEmail:  input.Email,
		ShippingMethod: update.ShippingMethod,
		ShippingTerms:  update.ShippingTerms,
		ShipmentDate:   update.ShipmentDate,
		DeliveryDate:   update.DeliveryDate,
	}); err != nil {
		recordFailed("shipping_email_failed")
		logger.Warn("failed to send shipment update email", "error", err, "order_id", orderID)
	}

	meter.Count("fulfillment.shipment.updated", 1)
	logger.Info("order shipping updated", "order_id", orderID, "shipping_method", update.ShippingMethod)
	return nil
}
