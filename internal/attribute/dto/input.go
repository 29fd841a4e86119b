package dto

type CreateAttributeInput struct {
	MerchantID string
	Name       string
	Kind       string // TEXT, NUMBER, SELECT, MULTISELECT
	Options    []string
}

type UpdateAttributeInput struct {
	ID         string
	MerchantID string
	Name       string
	Kind       string
	Options    []string
	IsActive   bool
}
