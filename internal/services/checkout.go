package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"
	"github.com/shopspring/decimal"

	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/models"
	"github.com/murshadpk/storefront/internal/observability"
	"github.com/murshadpk/storefront/internal/pricing"
)

type cartAccessor interface {
	GetCart(ctx context.Context, cartID string) (pricing.Cart, error)
	ClearCart(ctx context.Context, cartID string) error
}

type couponValidator interface {
	ValidateCoupon(ctx context.Context, code string) (*CouponResult, error)
}

type settingsProvider interface {
	PricingSettings(ctx context.Context) (*db.Settings, error)
}

type orderCreator interface {
	CreateWithItems(ctx context.Context, order *db.Order) error
}

type productNamer interface {
	GetName(ctx context.Context, id int64) (string, error)
}

type CheckoutService struct {
	carts       cartAccessor
	coupons     couponValidator
	settings    settingsProvider
	orders      orderCreator
	products    productNamer
	emailer     OrderEmailSender
	formatter   *pricing.Formatter
	phone       *regexp.Regexp
	phonePrefix string
	logger      *slog.Logger
}

type CheckoutDependencies struct {
	Carts       cartAccessor
	Coupons     couponValidator
	Settings    settingsProvider
	Orders      orderCreator
	Products    productNamer
	EmailSender OrderEmailSender
	Formatter   *pricing.Formatter
	PhonePrefix string
	Logger      *slog.Logger
}

func NewCheckoutService(deps CheckoutDependencies) (*CheckoutService, error) {
	if deps.Carts == nil || deps.Coupons == nil || deps.Settings == nil || deps.Orders == nil || deps.Products == nil {
		return nil, fmt.Errorf("checkout dependencies: carts, coupons, settings, orders and products are required")
	}
	if deps.EmailSender == nil {
		deps.EmailSender = noopOrderEmailSender{}
	}
	if deps.Formatter == nil {
		deps.Formatter = pricing.NewFormatter("")
	}
	if deps.PhonePrefix == "" {
		deps.PhonePrefix = "+92"
	}

	return &CheckoutService{
		carts:       deps.Carts,
		coupons:     deps.Coupons,
		settings:    deps.Settings,
		orders:      deps.Orders,
		products:    deps.Products,
		emailer:     deps.EmailSender,
		formatter:   deps.Formatter,
		phone:       phonePattern(deps.PhonePrefix),
		phonePrefix: deps.PhonePrefix,
		logger:      deps.Logger,
	}, nil
}

func (s *CheckoutService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

// Quote is the priced view of a cart shown on the checkout page.
type Quote struct {
	Items   pricing.Cart    `json:"items"`
	Totals  *pricing.Totals `json:"totals"`
	Summary []pricing.Line  `json:"summary"`
	Coupon  *CouponResult   `json:"coupon,omitempty"`
}

func (s *CheckoutService) Quote(ctx context.Context, cartID, couponCode string) (*Quote, error) {
	span := sentry.StartSpan(
		ctx,
		"service.checkout.quote",
		sentry.WithOpName("service.checkout"),
		sentry.WithDescription("Quote"),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	defer span.Finish()
	ctx = span.Context()

	cart, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.price(ctx, cart, couponCode)
}

func (s *CheckoutService) price(ctx context.Context, cart pricing.Cart, couponCode string) (*Quote, error) {
	discount := decimal.Zero
	var coupon *CouponResult
	if strings.TrimSpace(couponCode) != "" {
		result, err := s.coupons.ValidateCoupon(ctx, couponCode)
		if err != nil {
			return nil, err
		}
		coupon = result
		if result.Valid {
			discount = result.DiscountPercentage
		}
	}

	settings, err := s.settings.PricingSettings(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := pricing.ComputeTotals(cart, PricingParams(settings, discount))
	if err != nil {
		return nil, fmt.Errorf("failed to price cart: %w", err)
	}

	return &Quote{
		Items:   cart,
		Totals:  totals,
		Summary: s.formatter.Summary(totals),
		Coupon:  coupon,
	}, nil
}

type PlaceOrderInput struct {
	CartID     string
	UserID     *int64
	Address    models.ShippingAddress
	CouponCode string
}

// PlaceOrder validates the shipping address, prices the cart server-side and
// persists a cash-on-delivery order. The cart is cleared once the order is
// stored; a failed confirmation email does not fail the order.
func (s *CheckoutService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*db.Order, error) {
	span := sentry.StartSpan(
		ctx,
		"service.checkout.place_order",
		sentry.WithOpName("service.checkout"),
		sentry.WithDescription("PlaceOrder"),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	defer span.Finish()
	ctx = span.Context()

	logger := s.loggerFromContext(ctx)
	meter := observability.MeterFromContext(ctx)
	meter.Count("checkout.order.received", 1)
	recordFailure := func(reason string) {
		meter.Count("checkout.order.failed", 1, sentry.WithAttributes(
			attribute.String("reason", reason),
		))
	}

	address := normalizeAddress(input.Address)
	if err := s.validateAddress(address); err != nil {
		recordFailure("invalid_address")
		return nil, err
	}

	cart, err := s.carts.GetCart(ctx, input.CartID)
	if err != nil {
		recordFailure("cart_load_failed")
		return nil, err
	}
	if len(cart) == 0 {
		recordFailure("cart_empty")
		return nil, ErrCartEmpty
	}

	quote, err := s.price(ctx, cart, input.CouponCode)
	if err != nil {
		recordFailure("pricing_failed")
		return nil, err
	}

	couponCode := ""
	if quote.Coupon != nil && quote.Coupon.Valid {
		couponCode = quote.Coupon.Code
	}

	order := &db.Order{
		UserID:             input.UserID,
		CustomerEmail:      address.Email,
		CustomerName:       address.RecipientName,
		ShippingAddress:    address,
		PaymentMethod:      models.PaymentCashOnDelivery,
		CouponCode:         couponCode,
		Subtotal:           quote.Totals.Subtotal,
		DiscountPercentage: quote.Totals.DiscountPercent,
		DiscountAmount:     quote.Totals.DiscountAmount,
		TaxPercentage:      quote.Totals.TaxRatePercent,
		TaxAmount:          quote.Totals.TaxAmount,
		DeliveryCharge:     quote.Totals.EffectiveDeliveryCharge,
		CODCharge:          quote.Totals.EffectiveSurcharge,
		NetTotal:           quote.Totals.GrandTotal,
		Status:             db.StatusPending,
		Items:              s.orderItems(ctx, cart),
	}

	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		if errors.Is(err, db.ErrInsufficientStock) {
			recordFailure("insufficient_stock")
			return nil, ErrExceedsStock
		}
		recordFailure("create_failed")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.carts.ClearCart(ctx, input.CartID); err != nil {
		logger.Warn("failed to clear cart after order", "error", err, "order_id", order.ID)
	}

	if err := s.emailer.SendOrderConfirmation(ctx, order, quote.Summary); err != nil {
		recordFailure("confirmation_email_failed")
		logger.Warn("failed to send order confirmation", "error", err, "order_id", order.ID)
	}

	meter.Count("checkout.order.created", 1)
	logger.Info("order placed",
		"order_id", order.ID,
		"items", cart.ItemCount(),
		"net_total", order.NetTotal.String(),
		"coupon", couponCode,
	)
	return order, nil
}

func (s *CheckoutService) orderItems(ctx context.Context, cart pricing.Cart) []db.OrderItem {
	items := make([]db.OrderItem, 0, len(cart))
	for _, line := range cart {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			resolved, err := s.products.GetName(ctx, line.ProductID)
			if err != nil {
				s.loggerFromContext(ctx).Warn("failed to resolve product name", "error", err, "product_id", line.ProductID)
				resolved = unknownProductName
			}
			name = resolved
		}
		items = append(items, db.OrderItem{
			ProductID: line.ProductID,
			Name:      name,
			Size:      line.SelectedSize,
			Color:     line.SelectedColor,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return items
}

func (s *CheckoutService) validateAddress(address models.ShippingAddress) error {
	if err := inputValidator.Struct(address); err != nil {
		return userError(ErrCheckoutInvalidInput, validationMessage(err))
	}
	if !s.phone.MatchString(address.Phone) {
		return userError(ErrCheckoutInvalidInput, "phone must be in the format "+s.phonePrefix+"XXXXXXXXXX")
	}
	return nil
}

func normalizeAddress(address models.ShippingAddress) models.ShippingAddress {
	address.RecipientName = strings.TrimSpace(address.RecipientName)
	address.Email = strings.TrimSpace(address.Email)
	address.Phone = strings.ReplaceAll(strings.TrimSpace(address.Phone), " ", "")
	address.StreetAddress = strings.TrimSpace(address.StreetAddress)
	address.Apartment = strings.TrimSpace(address.Apartment)
	address.City = strings.TrimSpace(address.City)
	address.State = strings.TrimSpace(address.State)
	address.ZipCode = strings.TrimSpace(address.ZipCode)
	address.Country = strings.TrimSpace(address.Country)
	return address
}
