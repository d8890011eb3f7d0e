// Package pricing holds the cart consolidation and order total arithmetic
// shared by the storefront checkout and the order pipeline.
package pricing

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const defaultVariant = "default"

// LineItem is one product+variant+quantity entry in a cart. UnitPrice is the
// price after any product-level discount has been applied.
type LineItem struct {
	ProductID       int64           `json:"productId"`
	SelectedSize    *string         `json:"selectedSize"`
	SelectedColor   *string         `json:"selectedColor"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount"`
	Name            string          `json:"name,omitempty"`
	ImageURL        string          `json:"image,omitempty"`
}

// LineID returns the display identifier used by the storefront for a line,
// e.g. "42-M-default".
func (i LineItem) LineID() string {
	return strconv.FormatInt(i.ProductID, 10) + "-" + optionalOrDefault(i.SelectedSize) + "-" + optionalOrDefault(i.SelectedColor)
}

// LineTotal is UnitPrice × Quantity.
func (i LineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i LineItem) sameKey(other LineItem) bool {
	return i.ProductID == other.ProductID &&
		equalOptional(i.SelectedSize, other.SelectedSize) &&
		equalOptional(i.SelectedColor, other.SelectedColor)
}

func (i LineItem) clone() LineItem {
	i.SelectedSize = cloneOptional(i.SelectedSize)
	i.SelectedColor = cloneOptional(i.SelectedColor)
	return i
}

// Cart is an ordered sequence of line items in insertion order.
type Cart []LineItem

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	for i, item := range c {
		out[i] = item.clone()
	}
	return out
}

// ItemCount is the sum of quantities across all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c {
		count += item.Quantity
	}
	return count
}

// AddOrMerge returns a new cart with candidate merged into the line sharing its
// product and variant, or appended when no such line exists. On merge only the
// quantity changes; the stored price of the existing line wins.
func AddOrMerge(cart Cart, candidate LineItem) (Cart, error) {
	if candidate.ProductID <= 0 {
		return nil, invalid("productId", "is required")
	}
	if candidate.Quantity < 1 {
		return nil, invalid("quantity", "must be at least 1")
	}
	if candidate.UnitPrice.IsNegative() {
		return nil, invalid("unitPrice", "must not be negative")
	}

	next := make(Cart, 0, len(cart)+1)
	merged := false
	for _, item := range cart {
		item = item.clone()
		if !merged && item.sameKey(candidate) {
			item.Quantity += candidate.Quantity
			merged = true
		}
		next = append(next, item)
	}
	if !merged {
		next = append(next, candidate.clone())
	}
	return next, nil
}

// DiscountedPrice applies a product-level percentage discount to price. A zero
// discount returns price unchanged.
func DiscountedPrice(price, discountPercent decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, invalid("price", "must not be negative")
	}
	if err := checkPercent("discount", discountPercent); err != nil {
		return decimal.Zero, err
	}
	if discountPercent.IsZero() {
		return price, nil
	}
	return price.Sub(price.Mul(discountPercent.Shift(-2))), nil
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneOptional(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func optionalOrDefault(v *string) string {
	if v == nil || *v == "" {
		return defaultVariant
	}
	return *v
}
