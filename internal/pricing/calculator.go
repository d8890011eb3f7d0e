package pricing

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Params are the coupon and store settings applied to a cart.
type Params struct {
	DiscountPercent       decimal.Decimal
	TaxRatePercent        decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatDeliveryCharge    decimal.Decimal
	FlatSurcharge         decimal.Decimal
}

// Totals is the full price breakdown for a cart. Amounts carry full precision;
// rounding is left to presentation.
type Totals struct {
	Subtotal                decimal.Decimal `json:"subtotal"`
	DiscountPercent         decimal.Decimal `json:"discountPercent"`
	DiscountAmount          decimal.Decimal `json:"discountAmount"`
	SubtotalAfterDiscount   decimal.Decimal `json:"subtotalAfterDiscount"`
	TaxRatePercent          decimal.Decimal `json:"taxRatePercent"`
	TaxAmount               decimal.Decimal `json:"taxAmount"`
	TaxApplicable           bool            `json:"taxApplicable"`
	EffectiveDeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	DeliveryWaived          bool            `json:"deliveryWaived"`
	EffectiveSurcharge      decimal.Decimal `json:"codCharge"`
	GrandTotal              decimal.Decimal `json:"total"`
}

// ComputeTotals prices cart with params. Either a complete breakdown or a
// *ValidationError is returned.
func ComputeTotals(cart Cart, params Params) (*Totals, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	subtotal, err := Subtotal(cart)
	if err != nil {
		return nil, err
	}

	discountAmount := subtotal.Mul(params.DiscountPercent.Shift(-2))
	afterDiscount := subtotal.Sub(discountAmount)

	taxApplicable := !params.TaxRatePercent.IsZero()
	taxAmount := decimal.Zero
	if taxApplicable {
		taxAmount = afterDiscount.Mul(params.TaxRatePercent.Shift(-2))
	}

	deliveryWaived := afterDiscount.GreaterThanOrEqual(params.FreeShippingThreshold)
	delivery := params.FlatDeliveryCharge
	if deliveryWaived {
		delivery = decimal.Zero
	}

	// Cash on delivery is the only payment method, so the surcharge always applies.
	surcharge := params.FlatSurcharge

	return &Totals{
		Subtotal:                subtotal,
		DiscountPercent:         params.DiscountPercent,
		DiscountAmount:          discountAmount,
		SubtotalAfterDiscount:   afterDiscount,
		TaxRatePercent:          params.TaxRatePercent,
		TaxAmount:               taxAmount,
		TaxApplicable:           taxApplicable,
		EffectiveDeliveryCharge: delivery,
		DeliveryWaived:          deliveryWaived,
		EffectiveSurcharge:      surcharge,
		GrandTotal:              afterDiscount.Add(taxAmount).Add(delivery).Add(surcharge),
	}, nil
}

// Subtotal sums UnitPrice × Quantity over the cart.
func Subtotal(cart Cart) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for _, item := range cart {
		if item.UnitPrice.IsNegative() {
			return decimal.Zero, invalid("unitPrice", "must not be negative")
		}
		if item.Quantity < 0 {
			return decimal.Zero, invalid("quantity", "must not be negative")
		}
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal, nil
}

// Validate checks ranges without computing anything.
func (p Params) Validate() error {
	if err := checkPercent("discountPercent", p.DiscountPercent); err != nil {
		return err
	}
	if err := checkPercent("taxRatePercent", p.TaxRatePercent); err != nil {
		return err
	}
	if p.FreeShippingThreshold.IsNegative() {
		return invalid("freeShippingThreshold", "must not be negative")
	}
	if p.FlatDeliveryCharge.IsNegative() {
		return invalid("flatDeliveryCharge", "must not be negative")
	}
	if p.FlatSurcharge.IsNegative() {
		return invalid("flatSurcharge", "must not be negative")
	}
	return nil
}

func checkPercent(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return invalid(field, "must be between 0 and 100")
	}
	return nil
}
