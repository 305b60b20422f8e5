package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	ErrUserNotFound     = errors.New("user not found")
	ErrShopNotFound     = errors.New("shop not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("product variant not found")
	ErrLineNotFound     = errors.New("basket line not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrFavoriteNotFound = errors.New("product not found in favorites")

	ErrInvalidQuantity   = errors.New("quantity must be a non-negative integer")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrMalformedTotal    = errors.New("total price must be a valid number")

	ErrInactiveShop    = errors.New("shop is not active")
	ErrVariantInactive = errors.New("product variant is not active")

	ErrForbidden = errors.New("operation not allowed for this user")
)

// ErrorKind groups sentinel errors for transport-level mapping.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindValidation
	KindConflict
)

// KindOf classifies err into the error taxonomy. Unknown errors are internal.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrShopNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrVariantNotFound),
		errors.Is(err, ErrLineNotFound),
		errors.Is(err, ErrAddressNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrFavoriteNotFound),
		// another user's order reads as absent, not as forbidden
		errors.Is(err, ErrForbidden):
		return KindNotFound
	case errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrEmptyOrder),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrMalformedTotal):
		return KindValidation
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrInactiveShop),
		errors.Is(err, ErrVariantInactive):
		return KindConflict
	default:
		return KindInternal
	}
}
