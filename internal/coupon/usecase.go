package coupon

import (
	"context"

	"github.com/nakula/catalog-admin-service/internal/coupon/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
)

type UseCase interface {
	CreateCoupon(ctx context.Context, input *dto.CreateCouponInput) (*model.Coupon, error)
	GetCoupon(ctx context.Context, id string) (*model.Coupon, error)
	ListCoupons(ctx context.Context, filters *dto.CouponFilters) ([]model.Coupon, int, error)
	UpdateCoupon(ctx context.Context, input *dto.UpdateCouponInput) (*model.Coupon, error)
	DeleteCoupon(ctx context.Context, merchantID, id string) error

	// Redeem validates the coupon against an order value and records one use.
	Redeem(ctx context.Context, input *dto.RedeemCouponInput) (*dto.RedeemResult, error)
}
