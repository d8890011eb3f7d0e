package pricing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts for display. It is the only place amounts are
// rounded.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

func NewFormatter(symbol string) *Formatter {
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

// Format rounds to two decimals and prints with thousands grouping, e.g. "Rs.1,234.50".
// Only the integer part goes through the printer so no digits pass through a
// float.
func (f *Formatter) Format(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return f.symbol + sign + fixed
	}
	return f.symbol + sign + f.printer.Sprint(number.Decimal(n)) + "." + frac
}

// Percent prints a percentage with two decimals, e.g. "12.50%".
func (f *Formatter) Percent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}

// Line is one row of an order summary.
type Line struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// Summary returns the order summary rows for t. The tax row is omitted when
// tax does not apply to the store.
func (f *Formatter) Summary(t *Totals) []Line {
	if t == nil {
		return nil
	}

	lines := []Line{
		{Label: "Subtotal", Amount: f.Format(t.Subtotal)},
		{Label: "Coupon Discount (" + f.Percent(t.DiscountPercent) + ")", Amount: f.Format(t.DiscountAmount)},
		{Label: "Subtotal after Discount", Amount: f.Format(t.SubtotalAfterDiscount)},
	}
	if t.TaxApplicable {
		lines = append(lines, Line{Label: "Tax (" + f.Percent(t.TaxRatePercent) + ")", Amount: f.Format(t.TaxAmount)})
	}

	deliveryLabel := "Delivery Charges"
	if t.DeliveryWaived {
		deliveryLabel += " (Free)"
	}
	lines = append(lines,
		Line{Label: deliveryLabel, Amount: f.Format(t.EffectiveDeliveryCharge)},
		Line{Label: "Cash On Delivery Charges", Amount: f.Format(t.EffectiveSurcharge)},
		Line{Label: "Total", Amount: f.Format(t.GrandTotal)},
	)
	return lines
}
