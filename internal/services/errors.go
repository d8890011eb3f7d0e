package services

import (
	"errors"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrOutOfStock           = errors.New("product is out of stock")
	ErrExceedsStock         = errors.New("requested quantity exceeds available stock")
	ErrVariantRequired      = errors.New("size or color selection required")
	ErrInvalidCartInput     = errors.New("invalid cart input")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCheckoutInvalidInput = errors.New("invalid checkout input")
	ErrInvalidSettings      = errors.New("invalid settings")
	ErrInvalidReview        = errors.New("invalid review")
	ErrInvalidPolicy        = errors.New("invalid policy")
	ErrPolicyNotFound       = errors.New("policy not found")
	ErrInvalidShippingInput = errors.New("invalid shipping input")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidOrderLookup   = errors.New("invalid order lookup")
	ErrOrderStatusConflict  = errors.New("order status conflict")
	ErrUnauthorized         = errors.New("unauthorized")
)

// UserError carries a message that is safe to show to the caller. Kind is
// one of the sentinel errors above and decides the response status.
type UserError struct {
	Kind    error
	Message string
}

func (e UserError) Error() string {
	return e.Message
}

func (e UserError) Unwrap() error {
	return e.Kind
}

func userError(kind error, message string) error {
	return UserError{Kind: kind, Message: message}
}
