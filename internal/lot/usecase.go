package lot

import (
	"context"

	"github.com/nakula/catalog-admin-service/internal/lot/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
)

type UseCase interface {
	CreateLot(ctx context.Context, input *dto.CreateLotInput) (*model.Lot, error)
	GetLot(ctx context.Context, id string) (*model.Lot, error)
	ListLots(ctx context.Context, filters *dto.LotFilters) ([]model.Lot, int, error)
	UpdateLot(ctx context.Context, input *dto.UpdateLotInput) (*model.Lot, error)
	DeleteLot(ctx context.Context, merchantID, id string) error

	AdjustQuantity(ctx context.Context, input *dto.AdjustQuantityInput) (*model.Lot, error)
	DrawDownForSku(ctx context.Context, merchantID, skuID string, quantity float64, orderID string) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.LotMovement, int, error)
}
