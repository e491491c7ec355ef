package player

import "errors"

// Validation errors returned by inventory operations.
var (
	ErrInsufficientCash   = errors.New("not enough cash")
	ErrInsufficientSpace  = errors.New("not enough space")
	ErrInsufficientDrugs  = errors.New("not enough drugs")
	ErrInsufficientCrypto = errors.New("not enough crypto")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
)
