package domain

import "errors"

// Validation errors. These signal invalid input and are never returned for
// business-rule failures such as insufficient stock.
var (
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrNegativeStock       = errors.New("stock cannot be negative")
	ErrNegativeQuantity    = errors.New("quantity cannot be negative")
	ErrStockOverflow       = errors.New("stock would exceed the maximum")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyAddress        = errors.New("address cannot be empty")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrUnknownStatus       = errors.New("unknown order status")
)
