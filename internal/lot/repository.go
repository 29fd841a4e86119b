package lot

import (
	"context"

	"github.com/nakula/catalog-admin-service/internal/lot/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, lot *model.Lot) error
	FindByID(ctx context.Context, id string) (*model.Lot, error)
	FindByNumber(ctx context.Context, merchantID, lotNumber string) (*model.Lot, error)
	FindAll(ctx context.Context, filters *dto.LotFilters) ([]model.Lot, int, error)
	Update(ctx context.Context, lot *model.Lot) error
	Delete(ctx context.Context, id string) error

	// FindBySkus maps sku ids to their linked lots for order draw-down.
	FindBySkus(ctx context.Context, merchantID string, skuIDs []string) (map[string]*model.Lot, error)

	// Movements / Audit
	LogMovement(ctx context.Context, movement *model.LotMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.LotMovement, int, error)

	// Transaction support
	AdjustQuantityWithMovement(ctx context.Context, lot *model.Lot, movement *model.LotMovement) error
}
