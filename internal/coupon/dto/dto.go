package dto

type CouponFilters struct {
	MerchantID  string
	SearchQuery string // code or description
	IsActive    *bool
	Page        int
	PageSize    int
}

type RedeemResult struct {
	CouponID   string  `json:"coupon_id"`
	Code       string  `json:"code"`
	OrderValue float64 `json:"order_value"`
	Discount   float64 `json:"discount"`
	Payable    float64 `json:"payable"`
}
