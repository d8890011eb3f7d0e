package services

import (
	"strings"

	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/email"
	"github.com/murshadpk/storefront/internal/pricing"
)

// BuildOrderConfirmation assembles the confirmation email payload for an
// order that has already been persisted.
func BuildOrderConfirmation(order *db.Order, summary []pricing.Line, formatter *pricing.Formatter, trackOrderURL string) *email.OrderConfirmation {
	if formatter == nil {
		formatter = pricing.NewFormatter("")
	}

	items := make([]email.ItemLine, 0, len(order.Items))
	for _, item := range order.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			name = unknownProductName
		}
		line := pricing.LineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice}
		items = append(items, email.ItemLine{
			Name:      name,
			Variant:   variantLabel(item.Size, item.Color),
			Quantity:  item.Quantity,
			UnitPrice: formatter.Format(item.UnitPrice),
			LineTotal: formatter.Format(line.LineTotal()),
		})
	}

	lines := make([]email.SummaryLine, 0, len(summary))
	for _, l := range summary {
		lines = append(lines, email.SummaryLine{Label: l.Label, Amount: l.Amount})
	}

	return &email.OrderConfirmation{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		OrderDate:     order.CreatedAt,
		Items:         items,
		Summary:       lines,
		Address:       FormatAddress(order.ShippingAddress),
		TrackOrderURL: trackOrderURL,
	}
}

// FormatAddress renders an address on one line, skipping empty parts.
func FormatAddress(address db.ShippingAddress) string {
	parts := []string{
		address.RecipientName,
		address.StreetAddress,
		address.Apartment,
		address.City,
		address.State,
		address.ZipCode,
		address.Country,
	}
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

func variantLabel(size, color *string) string {
	var parts []string
	if size != nil && *size != "" {
		parts = append(parts, *size)
	}
	if color != nil && *color != "" {
		parts = append(parts, *color)
	}
	return strings.Join(parts, " / ")
}
