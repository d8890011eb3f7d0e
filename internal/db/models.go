package db

import "github.com/murshadpk/storefront/internal/models"

type (
	Product         = models.Product
	Coupon          = models.Coupon
	Settings        = models.Settings
	Order           = models.Order
	OrderItem       = models.OrderItem
	OrderStatus     = models.OrderStatus
	ShippingAddress = models.ShippingAddress
	ShipmentUpdate  = models.ShipmentUpdate
	Review          = models.Review
	User            = models.User
	ShippingPolicy  = models.ShippingPolicy
	ReturnPolicy    = models.ReturnPolicy
)

const (
	StatusPending   = models.StatusPending
	StatusShipped   = models.StatusShipped
	StatusDelivered = models.StatusDelivered
	StatusCancelled = models.StatusCancelled
)
