package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/murshadpk/storefront/internal/auth"
	"github.com/murshadpk/storefront/internal/cartstore"
	"github.com/murshadpk/storefront/internal/config"
	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/models"
	"github.com/murshadpk/storefront/internal/pricing"
	"github.com/murshadpk/storefront/internal/services"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type catalogService interface {
	GetProductBySlug(ctx context.Context, slug string) (*services.ProductDetail, error)
	GetProductName(ctx context.Context, id int64) (string, error)
}

type cartService interface {
	AddToCart(ctx context.Context, cartID string, input services.AddToCartInput) (pricing.Cart, error)
	GetCart(ctx context.Context, cartID string) (pricing.Cart, error)
	ClearCart(ctx context.Context, cartID string) error
}

type couponService interface {
	ValidateCoupon(ctx context.Context, code string) (*services.CouponResult, error)
}

type settingsService interface {
	PricingSettings(ctx context.Context) (*db.Settings, error)
	UpdateSettings(ctx context.Context, input services.SettingsInput) (*db.Settings, error)
}

type checkoutService interface {
	Quote(ctx context.Context, cartID, couponCode string) (*services.Quote, error)
	PlaceOrder(ctx context.Context, input services.PlaceOrderInput) (*db.Order, error)
}

type orderService interface {
	TrackOrder(ctx context.Context, orderID int64, email string) (*db.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*db.Order, error)
}

type reviewService interface {
	ListReviews(ctx context.Context, productID int64) ([]*db.Review, error)
	SubmitReview(ctx context.Context, input services.SubmitReviewInput) (*db.Review, error)
}

type adminService interface {
	ListCustomers(ctx context.Context) ([]*db.User, error)
	ListShippingPolicies(ctx context.Context) ([]*db.ShippingPolicy, error)
	CreateShippingPolicy(ctx context.Context, input services.ShippingPolicyInput) (*db.ShippingPolicy, error)
	UpdateShippingPolicy(ctx context.Context, id int64, input services.ShippingPolicyInput) (*db.ShippingPolicy, error)
	GetReturnPolicy(ctx context.Context) (*db.ReturnPolicy, error)
	SaveReturnPolicy(ctx context.Context, input services.ReturnPolicyInput) (*db.ReturnPolicy, error)
	UpdateShipping(ctx context.Context, input services.ShippingUpdateInput) error
}

// Handlers serves the storefront JSON API.
type Handlers struct {
	config      *config.Config
	db          pinger
	tokens      *auth.Tokens
	cartCookies *cartstore.Cookies
	catalog     catalogService
	carts       cartService
	coupons     couponService
	settings    settingsService
	checkout    checkoutService
	orders      orderService
	reviews     reviewService
	admin       adminService
	logger      *slog.Logger
}

type Dependencies struct {
	Config      *config.Config
	DB          pinger
	Tokens      *auth.Tokens
	CartCookies *cartstore.Cookies
	Catalog     catalogService
	Carts       cartService
	Coupons     couponService
	Settings    settingsService
	Checkout    checkoutService
	Orders      orderService
	Reviews     reviewService
	Admin       adminService
	Logger      *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if deps.Config == nil {
		return nil, fmt.Errorf("handlers dependencies: config is required")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("handlers dependencies: db is required")
	}
	if deps.Tokens == nil {
		return nil, fmt.Errorf("handlers dependencies: tokens is required")
	}
	if deps.CartCookies == nil {
		return nil, fmt.Errorf("handlers dependencies: cartCookies is required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("handlers dependencies: catalog is required")
	}
	if deps.Carts == nil {
		return nil, fmt.Errorf("handlers dependencies: carts is required")
	}
	if deps.Coupons == nil {
		return nil, fmt.Errorf("handlers dependencies: coupons is required")
	}
	if deps.Settings == nil {
		return nil, fmt.Errorf("handlers dependencies: settings is required")
	}
	if deps.Checkout == nil {
		return nil, fmt.Errorf("handlers dependencies: checkout is required")
	}
	if deps.Orders == nil {
		return nil, fmt.Errorf("handlers dependencies: orders is required")
	}
	if deps.Reviews == nil {
		return nil, fmt.Errorf("handlers dependencies: reviews is required")
	}
	if deps.Admin == nil {
		return nil, fmt.Errorf("handlers dependencies: admin is required")
	}

	return &Handlers{
		config:      deps.Config,
		db:          deps.DB,
		tokens:      deps.Tokens,
		cartCookies: deps.CartCookies,
		catalog:     deps.Catalog,
		carts:       deps.Carts,
		coupons:     deps.Coupons,
		settings:    deps.Settings,
		checkout:    deps.Checkout,
		orders:      deps.Orders,
		reviews:     deps.Reviews,
		admin:       deps.Admin,
		logger:      logger.With("component", "handlers"),
	}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	if err := h.db.Ping(ctx); err != nil {
		logger.Error("database health check failed", "error", err)
		http.Error(w, "Database unhealthy", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		logger.Error("failed to encode health response", "error", err)
	}
}

// CartSession attaches the cart id cookie to every cart and checkout request.
func (h *Handlers) CartSession(next http.Handler) http.Handler {
	withLogger := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if cartID, ok := cartstore.CartIDFromContext(ctx); ok {
			ctx = logging.With(ctx, "cart_id", cartID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
	return h.cartCookies.Middleware(withLogger)
}

// PaymentMethods lists what checkout accepts. Cash on delivery is the only
// option.
func (h *Handlers) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, r, http.StatusOK, []string{models.PaymentCashOnDelivery})
}

func (h *Handlers) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, h.logger)
}

func SecureCookiesFromConfig(cfg *config.Config) bool {
	if cfg == nil {
		return false
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL != "" {
		if parsed, err := url.Parse(baseURL); err == nil {
			return strings.EqualFold(parsed.Scheme, "https")
		}
	}

	return cfg.Port == "443" || cfg.Port == "8443"
}
