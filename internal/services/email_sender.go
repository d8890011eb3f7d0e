package services

import (
	"context"
	"fmt"
	"time"

	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/email"
	"github.com/murshadpk/storefront/internal/pricing"
)

type OrderEmailSender interface {
	SendOrderConfirmation(ctx context.Context, order *db.Order, summary []pricing.Line) error
	SendShipmentUpdate(ctx context.Context, input ShipmentEmailInput) error
}

type ShipmentEmailInput struct {
	OrderID        int64
	CustomerEmail  string
	ShippingMethod string
	ShippingTerms  string
	ShipmentDate   time.Time
	DeliveryDate   time.Time
}

// TemplateEmailSender renders the built-in templates and hands them to a
// provider.
type TemplateEmailSender struct {
	provider      email.Provider
	renderer      *email.Renderer
	formatter     *pricing.Formatter
	trackOrderURL func(orderID int64) string
}

func NewTemplateEmailSender(provider email.Provider, renderer *email.Renderer, formatter *pricing.Formatter, trackOrderURL func(orderID int64) string) *TemplateEmailSender {
	if trackOrderURL == nil {
		trackOrderURL = func(int64) string { return "" }
	}
	return &TemplateEmailSender{
		provider:      provider,
		renderer:      renderer,
		formatter:     formatter,
		trackOrderURL: trackOrderURL,
	}
}

func (s *TemplateEmailSender) SendOrderConfirmation(ctx context.Context, order *db.Order, summary []pricing.Line) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	data := BuildOrderConfirmation(order, summary, s.formatter, s.trackOrderURL(order.ID))
	msg, err := s.renderer.OrderConfirmation(data)
	if err != nil {
		return err
	}
	return s.provider.SendEmail(ctx, msg)
}

func (s *TemplateEmailSender) SendShipmentUpdate(ctx context.Context, input ShipmentEmailInput) error {
	msg, err := s.renderer.ShipmentUpdate(&email.ShipmentUpdate{
		OrderID:        input.OrderID,
		CustomerEmail:  input.CustomerEmail,
		ShippingMethod: input.ShippingMethod,
		ShippingTerms:  input.ShippingTerms,
		ShipmentDate:   input.ShipmentDate,
		DeliveryDate:   input.DeliveryDate,
		TrackOrderURL:  s.trackOrderURL(input.OrderID),
	})
	if err != nil {
		return err
	}
	return s.provider.SendEmail(ctx, msg)
}

type noopOrderEmailSender struct{}

func (noopOrderEmailSender) SendOrderConfirmation(context.Context, *db.Order, []pricing.Line) error {
	return nil
}

func (noopOrderEmailSender) SendShipmentUpdate(context.Context, ShipmentEmailInput) error {
	return nil
}
