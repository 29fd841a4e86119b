package product

import (
	"context"

	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/internal/product/dto"
	"github.com/nakula/catalog-admin-service/internal/variant"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, merchantID, id string) error

	// Variant ops
	GenerateVariants(ctx context.Context, input *dto.GenerateVariantsInput) ([]variant.SkuDraft, error)
	ListSkus(ctx context.Context, merchantID, productID string) ([]model.Sku, error)
	ReplaceSkus(ctx context.Context, input *dto.ReplaceSkusInput) ([]model.Sku, error)
}
