package dto

import "time"

type CreateCouponInput struct {
	MerchantID    string
	Code          string
	Description   string
	DiscountKind  string
	DiscountValue float64
	MinOrderValue float64
	UsageLimit    int
	ExpiresAt     *time.Time
}

type UpdateCouponInput struct {
	ID            string
	MerchantID    string
	Description   string
	DiscountKind  string
	DiscountValue float64
	MinOrderValue float64
	UsageLimit    int
	ExpiresAt     *time.Time
	IsActive      bool
}

type RedeemCouponInput struct {
	MerchantID string
	Code       string
	OrderValue float64
}
