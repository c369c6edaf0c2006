package domain

import "errors"

// Domain-level errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrInvalidCoupon   = errors.New("invalid coupon code")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrStepOrder       = errors.New("checkout step not available")
	ErrUnauthorized    = errors.New("authentication required")
	ErrForbidden       = errors.New("admin access required")
	ErrInvalidSession  = errors.New("invalid session id")
)
