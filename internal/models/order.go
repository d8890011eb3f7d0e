package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentCashOnDelivery is the only payment method the storefront accepts.
const PaymentCashOnDelivery = "cash_on_delivery"

type ShippingAddress struct {
	RecipientName string `json:"recipientName" validate:"required,max=100,letters"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	StreetAddress string `json:"streetAddress" validate:"required,max=255"`
	Apartment     string `json:"apartment,omitempty" validate:"omitempty,numeric,max=10"`
	City          string `json:"city" validate:"required,max=100,letters"`
	State         string `json:"state" validate:"required,max=100,letters"`
	ZipCode       string `json:"zipCode" validate:"required,alphanum,max=12"`
	Country       string `json:"country" validate:"required,max=100,letters"`
}

type Order struct {
	ID                 int64           `json:"id"`
	UserID             *int64          `json:"userId,omitempty"`
	CustomerEmail      string          `json:"customerEmail"`
	CustomerName       string          `json:"customerName"`
	ShippingAddress    ShippingAddress `json:"shippingAddress"`
	PaymentMethod      string          `json:"paymentMethod"`
	CouponCode         string          `json:"couponCode,omitempty"`
	Subtotal           decimal.Decimal `json:"total"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	DiscountAmount     decimal.Decimal `json:"discount"`
	TaxPercentage      decimal.Decimal `json:"taxPercentage"`
	TaxAmount          decimal.Decimal `json:"tax"`
	DeliveryCharge     decimal.Decimal `json:"deliveryCharge"`
	CODCharge          decimal.Decimal `json:"extraDeliveryCharge"`
	NetTotal           decimal.Decimal `json:"netTotal"`
	Status             OrderStatus     `json:"status"`
	ShippingMethod     string          `json:"shippingMethod,omitempty"`
	ShippingTerms      string          `json:"shippingTerms,omitempty"`
	ShipmentDate       *time.Time      `json:"shipmentDate,omitempty"`
	DeliveryDate       *time.Time      `json:"deliveryDate,omitempty"`
	Items              []OrderItem     `json:"items"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Size      *string         `json:"size,omitempty"`
	Color     *string         `json:"color,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

// ShipmentUpdate carries the fields an admin sets when dispatching an order.
type ShipmentUpdate struct {
	ShippingMethod string
	ShippingTerms  string
	ShipmentDate   time.Time
	DeliveryDate   time.Time
}
