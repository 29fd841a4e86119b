package coupon

import (
	"context"

	"github.com/nakula/catalog-admin-service/internal/coupon/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Coupon) error
	FindByID(ctx context.Context, id string) (*model.Coupon, error)
	FindByCode(ctx context.Context, merchantID, code string) (*model.Coupon, error)
	FindAll(ctx context.Context, filters *dto.CouponFilters) ([]model.Coupon, int, error)
	Update(ctx context.Context, c *model.Coupon) error
	Delete(ctx context.Context, id string) error

	// IncrementUsage bumps used_count only while the coupon is active,
	// unexpired and under its usage limit. Returns the rows affected.
	IncrementUsage(ctx context.Context, id string) (int64, error)
}
