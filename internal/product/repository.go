package product

import (
	"context"

	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	// Slug uniqueness per merchant; slugs seed generated SKU codes.
	IsSlugUnique(ctx context.Context, merchantID, slug, excludeID string) (bool, error)

	// SKU rows for a product, in their stored order.
	ListSkus(ctx context.Context, productID string) ([]model.Sku, error)

	// ReplaceSkus swaps the product's SKU set in one transaction: rows whose
	// id appears in skus are updated, new rows are inserted, rows absent
	// from skus are deleted.
	ReplaceSkus(ctx context.Context, productID string, skus []model.Sku) error
}
