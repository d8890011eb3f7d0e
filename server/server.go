package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/murshadpk/storefront/internal/config"
	"github.com/murshadpk/storefront/internal/handlers"
)

type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	handlers   *handlers.Handlers
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handlers) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if h == nil {
		return nil, fmt.Errorf("handlers are required")
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		handlers: h,
	}

	router := s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Server) Run() error {
	s.logger.Info("server starting", "port", s.cfg.Port)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return nil
	}

	s.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) buildRouter() *mux.Router {
	h := s.handlers

	r := mux.NewRouter()
	r.Use(h.RequestLogger)
	r.Use(h.SecurityHeaders)
	r.Use(h.MetricsContext)
	r.HandleFunc("/health", h.Health).Methods("GET").Name("health")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":false,"message":"Not found"}`))
	})

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products/productname/{id}", h.GetProductName).Methods("GET").Name("products.name")
	api.HandleFunc("/products/{slug}", h.GetProduct).Methods("GET").Name("products.get")
	api.HandleFunc("/settings", h.GetSettings).Methods("GET").Name("settings.get")
	api.HandleFunc("/payment-methods", h.PaymentMethods).Methods("GET").Name("payment_methods.list")
	api.HandleFunc("/coupons/validate", h.ValidateCoupon).Methods("POST").Name("coupons.validate")
	api.HandleFunc("/reviews", h.ListReviews).Methods("GET").Name("reviews.list")
	api.Handle("/reviews", h.RequireUser(http.HandlerFunc(h.SubmitReview))).Methods("POST").Name("reviews.create")
	api.HandleFunc("/shippingpolicy", h.ListShippingPolicies).Methods("GET").Name("shipping_policy.list")
	api.HandleFunc("/returnandexchangepolicy", h.GetReturnPolicy).Methods("GET").Name("return_policy.get")
	api.HandleFunc("/orders/{id:[0-9]+}", h.TrackOrder).Methods("GET").Name("orders.track")

	// Cart and checkout are keyed by the cart cookie, so state changes must
	// come from our own origin.
	shop := api.NewRoute().Subrouter()
	shop.Use(h.CartSession)
	shop.Use(h.RequireSameOrigin)
	shop.HandleFunc("/cart", h.GetCart).Methods("GET").Name("cart.get")
	shop.HandleFunc("/cart/items", h.AddCartItem).Methods("POST").Name("cart.items.add")
	shop.HandleFunc("/cart", h.ClearCart).Methods("DELETE").Name("cart.clear")
	shop.HandleFunc("/checkout/quote", h.Quote).Methods("POST").Name("checkout.quote")
	shop.Handle("/orders", h.OptionalUser(http.HandlerFunc(h.PlaceOrder))).Methods("POST").Name("orders.create")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.RequireAdmin)
	admin.HandleFunc("/users", h.AdminListUsers).Methods("GET").Name("admin.users.list")
	admin.HandleFunc("/settings", h.UpdateSettings).Methods("PUT").Name("admin.settings.update")
	admin.HandleFunc("/shippingpolicy", h.AdminCreateShippingPolicy).Methods("POST").Name("admin.shipping_policy.create")
	admin.HandleFunc("/shippingpolicy/{id}", h.AdminUpdateShippingPolicy).Methods("PUT").Name("admin.shipping_policy.update")
	admin.HandleFunc("/returnandexchangepolicy", h.AdminSaveReturnPolicy).Methods("PUT").Name("admin.return_policy.save")
	admin.HandleFunc("/orders/{id:[0-9]+}", h.AdminGetOrder).Methods("GET").Name("admin.orders.get")
	admin.HandleFunc("/shipping", h.AdminUpdateShipping).Methods("POST").Name("admin.shipping.update")

	return r
}
