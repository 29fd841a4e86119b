package dto

type LotFilters struct {
	MerchantID  string
	SearchQuery string // lot number
	Depleted    *bool  // current_quantity == 0
	Page        int
	PageSize    int
}

type MovementFilters struct {
	MerchantID string
	LotID      string
	Page       int
	PageSize   int
}
