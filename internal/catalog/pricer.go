package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/murshadpk/storefront/internal/pricing"
)

// PricePreview is the shelf price a seeded product will sell at.
type PricePreview struct {
	Slug      string
	Price     decimal.Decimal
	Discount  decimal.Decimal
	SalePrice decimal.Decimal
}

type Pricer struct{}

func NewPricer() *Pricer {
	return &Pricer{}
}

func (p *Pricer) Preview(seed *SeedFile) ([]PricePreview, error) {
	previews := make([]PricePreview, 0, len(seed.Products))
	for _, product := range seed.Products {
		sale, err := pricing.DiscountedPrice(product.Price, product.Discount)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", product.Slug, err)
		}
		previews = append(previews, PricePreview{
			Slug:      product.Slug,
			Price:     product.Price,
			Discount:  product.Discount,
			SalePrice: sale,
		})
	}
	return previews, nil
}
