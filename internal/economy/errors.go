package economy

import "errors"

// Validation errors returned by market queries.
var (
	ErrUnknownDrug       = errors.New("drug not traded here")
	ErrUnknownQuality    = errors.New("quality not available")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotTradeable      = errors.New("not tradeable right now")
)
