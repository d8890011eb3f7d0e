package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/murshadpk/storefront/internal/auth"
	"github.com/murshadpk/storefront/internal/cache"
	"github.com/murshadpk/storefront/internal/cartstore"
	"github.com/murshadpk/storefront/internal/config"
	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/email"
	"github.com/murshadpk/storefront/internal/handlers"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/pricing"
	"github.com/murshadpk/storefront/internal/services"
)

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	DB            *pgxpool.Pool
	CacheProvider cache.Provider
	CartStore     cartstore.Store
	Redis         *redis.Client
	Handlers      *handlers.Handlers
	sentryEnabled bool
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
		}); err != nil {
			return nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
		sentryEnabled = true
	}

	logger := logging.New(os.Stdout, logging.Options{
		Format: cfg.LogFormat,
		Level:  cfg.LogLevel,
		Sentry: sentryEnabled,
	})

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	database, err := db.Connect(startupCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(startupCtx, database); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("database migrations applied")
	}

	var redisClient *redis.Client
	if cfg.CacheProvider == "redis" || cfg.CartStoreProvider == "redis" {
		redisClient, err = cache.Dial(startupCtx, cfg.RedisConnectionString)
		if err != nil {
			database.Close()
			return nil, err
		}
	}

	cacheProvider, err := cache.NewProvider(cache.Config{
		Provider: cfg.CacheProvider,
		Redis:    redisClient,
	})
	if err != nil {
		closeRedis(logger, redisClient)
		database.Close()
		return nil, fmt.Errorf("failed to initialize cache provider: %w", err)
	}

	cartStore, err := cartstore.NewStore(cartstore.Config{
		Provider: cfg.CartStoreProvider,
		Redis:    redisClient,
	})
	if err != nil {
		closeRedis(logger, redisClient)
		database.Close()
		return nil, fmt.Errorf("failed to initialize cart store: %w", err)
	}

	cleanup := func() {
		closeCartStore(logger, cartStore)
		closeCacheProvider(logger, cacheProvider)
		closeRedis(logger, redisClient)
		database.Close()
	}

	emailProvider, err := email.NewProvider(email.Config{
		Provider: cfg.EmailProvider,
		APIKey:   cfg.ResendAPIKey,
		From:     cfg.EmailFrom,
	}, logger.With("component", "email"))
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to initialize email provider: %w", err)
	}

	renderer, err := email.NewRenderer()
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to initialize email templates: %w", err)
	}

	productStore := db.NewProductStore(database)
	couponStore := db.NewCouponStore(database)
	settingsStore := db.NewSettingsStore(database)
	orderStore := db.NewOrderStore(database)
	reviewStore := db.NewReviewStore(database)
	userStore := db.NewUserStore(database)
	policyStore := db.NewPolicyStore(database)

	formatter := pricing.NewFormatter(cfg.CurrencySymbol)
	orderEmailer := services.NewTemplateEmailSender(emailProvider, renderer, formatter, cfg.TrackOrderURL)

	catalogService := services.NewCatalogService(productStore, logger.With("component", "catalog_service"))
	cartService := services.NewCartService(productStore, cartStore, cfg.CartTTL, logger.With("component", "cart_service"))
	couponService := services.NewCouponService(couponStore, logger.With("component", "coupon_service"))
	settingsService := services.NewSettingsService(settingsStore, cacheProvider, cfg.SettingsCacheTTL, logger.With("component", "settings_service"))
	checkoutService, err := services.NewCheckoutService(services.CheckoutDependencies{
		Carts:       cartService,
		Coupons:     couponService,
		Settings:    settingsService,
		Orders:      orderStore,
		Products:    productStore,
		EmailSender: orderEmailer,
		Formatter:   formatter,
		PhonePrefix: cfg.PhonePrefix,
		Logger:      logger.With("component", "checkout_service"),
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to initialize checkout service: %w", err)
	}
	orderService := services.NewOrderService(orderStore, logger.With("component", "order_service"))
	reviewService := services.NewReviewService(reviewStore, productStore, logger.With("component", "review_service"))
	adminService := services.NewAdminService(userStore, policyStore, orderStore, orderEmailer, logger.With("component", "admin_service"))

	h, err := handlers.New(handlers.Dependencies{
		Config:      cfg,
		DB:          database,
		Tokens:      auth.NewTokens(cfg.JWTSecret),
		CartCookies: cartstore.NewCookies(cfg.CartTTL, handlers.SecureCookiesFromConfig(cfg)),
		Catalog:     catalogService,
		Carts:       cartService,
		Coupons:     couponService,
		Settings:    settingsService,
		Checkout:    checkoutService,
		Orders:      orderService,
		Reviews:     reviewService,
		Admin:       adminService,
		Logger:      logger,
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		DB:            database,
		CacheProvider: cacheProvider,
		CartStore:     cartStore,
		Redis:         redisClient,
		Handlers:      h,
		sentryEnabled: sentryEnabled,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.CartStore != nil {
		closeCartStore(a.Logger, a.CartStore)
	}
	if a.CacheProvider != nil {
		closeCacheProvider(a.Logger, a.CacheProvider)
	}
	closeRedis(a.Logger, a.Redis)
	if a.DB != nil {
		a.DB.Close()
	}
	if a.sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}

func closeCartStore(logger *slog.Logger, store cartstore.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil && logger != nil {
		logger.Warn("failed to close cart store", "error", err)
	}
}

func closeCacheProvider(logger *slog.Logger, provider cache.Provider) {
	if provider == nil {
		return
	}
	if err := provider.Close(); err != nil && logger != nil {
		logger.Warn("failed to close cache provider", "error", err)
	}
}

func closeRedis(logger *slog.Logger, client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil && logger != nil {
		logger.Warn("failed to close redis client", "error", err)
	}
}
