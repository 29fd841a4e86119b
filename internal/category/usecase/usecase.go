package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nakula/catalog-admin-service/internal/category"
	"github.com/nakula/catalog-admin-service/internal/category/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if err := uc.validateParent(ctx, input.MerchantID, input.ParentID); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now()

	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID:  input.MerchantID,
		ParentID:    input.ParentID,
		Name:        input.Name,
		Description: &input.Description,
		ImageURL:    &input.ImageURL,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return uc.repo.FindByID(ctx, id)
}

// ListCategories returns a flat list; the admin UI builds the tree from
// parent_id links client-side.
func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil || cat.MerchantID != input.MerchantID {
		return nil, category.ErrNotFound
	}

	if input.ParentID != nil && *input.ParentID == cat.ID {
		return nil, category.ErrParentNotFound
	}
	if err := uc.validateParent(ctx, input.MerchantID, input.ParentID); err != nil {
		return nil, err
	}

	cat.Name = input.Name
	cat.Description = &input.Description
	cat.ImageURL = &input.ImageURL
	cat.SortOrder = input.SortOrder
	cat.IsActive = input.IsActive
	cat.ParentID = input.ParentID
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, merchantID, id string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil || cat.MerchantID != merchantID {
		return nil
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *categoryUseCase) validateParent(ctx context.Context, merchantID string, parentID *string) error {
	if parentID == nil || *parentID == "" {
		return nil
	}
	parent, err := uc.repo.FindByID(ctx, *parentID)
	if err != nil {
		return err
	}
	if parent == nil || parent.MerchantID != merchantID {
		return category.ErrParentNotFound
	}
	return nil
}
