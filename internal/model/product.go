package model

type Product struct {
	BaseModel
	MerchantID   string    `db:"merchant_id" json:"merchant_id"`
	CategoryID   *string   `db:"category_id" json:"category_id"` // Nullable
	Name         string    `db:"name" json:"name"`
	Slug         string    `db:"slug" json:"slug"`
	Description  *string   `db:"description" json:"description"`
	MRP          float64   `db:"mrp" json:"mrp"`
	SellingPrice float64   `db:"selling_price" json:"selling_price"`
	CostPrice    float64   `db:"cost_price" json:"cost_price"`
	TaxRate      float64   `db:"tax_rate" json:"tax_rate"`
	HasVariants  bool      `db:"has_variants" json:"has_variants"`
	ImageURL     *string   `db:"image_url" json:"image_url"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	Skus         []Sku     `db:"-" json:"skus"`     // Not in DB table directly
	Category     *Category `db:"-" json:"category"` // Joined data
}

// Sku is a persisted sellable variant. Attributes carries the combination
// that identifies it; regeneration matches on the combination, never on the
// code or row position.
type Sku struct {
	BaseModel
	ProductID    string        `db:"product_id" json:"product_id"`
	Code         string        `db:"code" json:"sku"`
	MRP          float64       `db:"mrp" json:"mrp"`
	SellingPrice float64       `db:"selling_price" json:"selling_price"`
	CostPrice    float64       `db:"cost_price" json:"cost_price"`
	Stock        int           `db:"stock" json:"stock"`
	Attributes   SkuAttributes `db:"attributes" json:"attributes"`
	Images       StringSlice   `db:"images" json:"images"`
	LotID        *string       `db:"lot_id" json:"lot_id"`
}
