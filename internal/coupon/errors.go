package coupon

import "errors"

var (
	ErrNotFound  = errors.New("coupon not found")
	ErrCodeTaken = errors.New("coupon code already exists")
	ErrExpired   = errors.New("coupon has expired")
	ErrExhausted = errors.New("coupon usage limit reached")
	ErrInactive  = errors.New("coupon is not active")
)
