package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nakula/catalog-admin-service/internal/attribute"
	"github.com/nakula/catalog-admin-service/internal/attribute/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

var validKinds = map[string]bool{
	model.AttributeKindText:        true,
	model.AttributeKindNumber:      true,
	model.AttributeKindSelect:      true,
	model.AttributeKindMultiSelect: true,
}

type attributeUseCase struct {
	repo   attribute.Repository
	logger logger.ZapLogger
}

func NewAttributeUseCase(repo attribute.Repository, log logger.ZapLogger) attribute.UseCase {
	return &attributeUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *attributeUseCase) CreateAttribute(ctx context.Context, input *dto.CreateAttributeInput) (*model.Attribute, error) {
	if !validKinds[input.Kind] {
		return nil, errors.New("invalid attribute kind")
	}

	id := uuid.New().String()
	now := time.Now()

	attr := &model.Attribute{
		BaseModel: model.BaseModel{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID: input.MerchantID,
		Name:       input.Name,
		Kind:       input.Kind,
		Options:    model.StringSlice(input.Options),
		IsActive:   true,
	}

	if err := uc.repo.Create(ctx, attr); err != nil {
		return nil, err
	}
	return attr, nil
}

func (uc *attributeUseCase) GetAttribute(ctx context.Context, id string) (*model.Attribute, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *attributeUseCase) ListAttributes(ctx context.Context, filters *dto.AttributeFilters) ([]model.Attribute, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *attributeUseCase) UpdateAttribute(ctx context.Context, input *dto.UpdateAttributeInput) (*model.Attribute, error) {
	attr, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if attr == nil || attr.MerchantID != input.MerchantID {
		return nil, errors.New("attribute not found")
	}
	if !validKinds[input.Kind] {
		return nil, errors.New("invalid attribute kind")
	}

	attr.Name = input.Name
	attr.Kind = input.Kind
	attr.Options = model.StringSlice(input.Options)
	attr.IsActive = input.IsActive
	attr.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, attr); err != nil {
		return nil, err
	}
	return attr, nil
}

func (uc *attributeUseCase) DeleteAttribute(ctx context.Context, merchantID, id string) error {
	attr, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if attr == nil || attr.MerchantID != merchantID {
		return nil
	}
	return uc.repo.Delete(ctx, id)
}

// NameResolver loads the named definitions and returns a lookup from
// attribute id to display name. Unknown ids resolve to "" so callers can
// apply their own fallbacks.
func (uc *attributeUseCase) NameResolver(ctx context.Context, merchantID string, ids []string) (func(attributeID string) string, error) {
	attrs, err := uc.repo.FindByIDs(ctx, merchantID, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(attrs))
	for _, a := range attrs {
		names[a.ID] = a.Name
	}
	return func(attributeID string) string {
		return names[attributeID]
	}, nil
}
