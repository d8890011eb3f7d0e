package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	// SizeStock holds counts only for sizes tracked individually.
	SizeStock map[string]int `json:"sizeStock,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type Coupon struct {
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Active             bool            `json:"active"`
	ExpiresAt          *time.Time      `json:"expiresAt,omitempty"`
}

// Settings are the storefront-wide pricing knobs an admin can edit.
type Settings struct {
	DeliveryCharge        decimal.Decimal `json:"deliveryCharge"`
	TaxPercentage         decimal.Decimal `json:"taxPercentage"`
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
	CODCharge             decimal.Decimal `json:"codCharge"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type ShippingPolicy struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ReturnPolicy struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updatedAt"`
}
