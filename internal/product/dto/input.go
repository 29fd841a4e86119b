package dto

import "github.com/nakula/catalog-admin-service/internal/variant"

type CreateProductInput struct {
	MerchantID   string
	CategoryID   string // Optional
	Name         string
	Slug         string
	Description  string
	MRP          float64
	SellingPrice float64
	CostPrice    float64
	TaxRate      float64
	ImageURL     string
}

type UpdateProductInput struct {
	ID           string
	MerchantID   string
	CategoryID   string
	Name         string
	Slug         string
	Description  string
	MRP          float64
	SellingPrice float64
	CostPrice    float64
	TaxRate      float64
	ImageURL     string
	IsActive     bool
}

// GenerateVariantsInput carries the editor's current axis selection. Axis
// and value order is the operator's insertion order and fixes both the
// combination sequence and the derived SKU codes.
type GenerateVariantsInput struct {
	MerchantID string
	ProductID  string
	Axes       []variant.Axis
}

// ReplaceSkusInput carries the operator-confirmed draft collection. The
// usecase exports it into persistence shape and replaces the product's SKU
// set with it.
type ReplaceSkusInput struct {
	MerchantID string
	ProductID  string
	Drafts     []variant.SkuDraft
}
