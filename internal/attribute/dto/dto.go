package dto

type AttributeFilters struct {
	MerchantID  string
	IsActive    *bool
	SearchQuery string
	Page        int
	PageSize    int
}
