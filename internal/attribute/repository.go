package attribute

import (
	"context"

	"github.com/nakula/catalog-admin-service/internal/attribute/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, attr *model.Attribute) error
	FindByID(ctx context.Context, id string) (*model.Attribute, error)
	FindByIDs(ctx context.Context, merchantID string, ids []string) ([]model.Attribute, error)
	FindAll(ctx context.Context, filters *dto.AttributeFilters) ([]model.Attribute, int, error)
	Update(ctx context.Context, attr *model.Attribute) error
	Delete(ctx context.Context, id string) error
}
