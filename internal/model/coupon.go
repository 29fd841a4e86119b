package model

import "time"

const (
	DiscountKindPercent = "PERCENT"
	DiscountKindFixed   = "FIXED"
)

type Coupon struct {
	BaseModel
	MerchantID    string     `db:"merchant_id" json:"merchant_id"`
	Code          string     `db:"code" json:"code"`
	Description   *string    `db:"description" json:"description"`
	DiscountKind  string     `db:"discount_kind" json:"discount_kind"`
	DiscountValue float64    `db:"discount_value" json:"discount_value"`
	MinOrderValue float64    `db:"min_order_value" json:"min_order_value"`
	UsageLimit    int        `db:"usage_limit" json:"usage_limit"` // 0 means unlimited
	UsedCount     int        `db:"used_count" json:"used_count"`
	ExpiresAt     *time.Time `db:"expires_at" json:"expires_at"`
	IsActive      bool       `db:"is_active" json:"is_active"`
}
