// Package catalog parses and applies storefront seed files.
package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type SeedFile struct {
	Products []ProductSeed `yaml:"products"`
	Coupons  []CouponSeed  `yaml:"coupons"`
	Settings *SettingsSeed `yaml:"settings"`
}

type ProductSeed struct {
	Slug        string          `yaml:"slug"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Category    string          `yaml:"category"`
	Price       decimal.Decimal `yaml:"price"`
	Discount    decimal.Decimal `yaml:"discount"`
	Stock       int             `yaml:"stock"`
	ImageURL    string          `yaml:"image_url"`
	Sizes       []string        `yaml:"sizes"`
	Colors      []string        `yaml:"colors"`
	SizeStock   map[string]int  `yaml:"size_stock"`
}

type CouponSeed struct {
	Code               string          `yaml:"code"`
	DiscountPercentage decimal.Decimal `yaml:"discount_percentage"`
	Active             *bool           `yaml:"active"`
	ExpiresAt          *time.Time      `yaml:"expires_at"`
}

// IsActive defaults to true when the seed omits the flag.
func (c CouponSeed) IsActive() bool {
	return c.Active == nil || *c.Active
}

type SettingsSeed struct {
	DeliveryCharge        decimal.Decimal `yaml:"delivery_charge"`
	TaxPercentage         decimal.Decimal `yaml:"tax_percentage"`
	FreeShippingThreshold decimal.Decimal `yaml:"free_shipping_threshold"`
	CODCharge             decimal.Decimal `yaml:"cod_charge"`
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(content []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(content, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &seed, nil
}

func (p *Parser) ParseFromString(content string) (*SeedFile, error) {
	return p.Parse([]byte(content))
}
