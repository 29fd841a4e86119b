package attribute

import (
	"context"

	"github.com/nakula/catalog-admin-service/internal/attribute/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
)

type UseCase interface {
	CreateAttribute(ctx context.Context, input *dto.CreateAttributeInput) (*model.Attribute, error)
	GetAttribute(ctx context.Context, id string) (*model.Attribute, error)
	ListAttributes(ctx context.Context, filters *dto.AttributeFilters) ([]model.Attribute, int, error)
	UpdateAttribute(ctx context.Context, input *dto.UpdateAttributeInput) (*model.Attribute, error)
	DeleteAttribute(ctx context.Context, merchantID, id string) error

	// NameResolver builds a lookup over the merchant's current definitions,
	// used when exporting SKU drafts for submission.
	NameResolver(ctx context.Context, merchantID string, ids []string) (func(attributeID string) string, error)
}
