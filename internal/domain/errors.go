package domain

import "errors"

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidRedemption = errors.New("invalid point redemption")
	ErrLineNotFound      = errors.New("cart line not found")
)
