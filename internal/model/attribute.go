package model

// Attribute kinds mirror the input controls the console renders for them.
const (
	AttributeKindText        = "TEXT"
	AttributeKindNumber      = "NUMBER"
	AttributeKindSelect      = "SELECT"
	AttributeKindMultiSelect = "MULTISELECT"
)

type Attribute struct {
	BaseModel
	MerchantID string      `db:"merchant_id" json:"merchant_id"`
	Name       string      `db:"name" json:"name"`
	Kind       string      `db:"kind" json:"kind"`
	Options    StringSlice `db:"options" json:"options"` // predefined values, may be empty
	IsActive   bool        `db:"is_active" json:"is_active"`
}
