package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nakula/catalog-admin-service/internal/coupon"
	"github.com/nakula/catalog-admin-service/internal/coupon/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type couponUseCase struct {
	repo   coupon.Repository
	logger logger.ZapLogger
}

func NewCouponUseCase(repo coupon.Repository, log logger.ZapLogger) coupon.UseCase {
	return &couponUseCase{
		repo:   repo,
		logger: log,
	}
}

func validateDiscount(kind string, value float64) error {
	switch kind {
	case model.DiscountKindPercent:
		if value <= 0 || value > 100 {
			return errors.New("percent discount must be between 0 and 100")
		}
	case model.DiscountKindFixed:
		if value <= 0 {
			return errors.New("fixed discount must be positive")
		}
	default:
		return errors.New("invalid discount kind")
	}
	return nil
}

func (uc *couponUseCase) CreateCoupon(ctx context.Context, input *dto.CreateCouponInput) (*model.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, errors.New("coupon code is required")
	}
	if err := validateDiscount(input.DiscountKind, input.DiscountValue); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByCode(ctx, input.MerchantID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, coupon.ErrCodeTaken
	}

	now := time.Now()
	c := &model.Coupon{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID:    input.MerchantID,
		Code:          code,
		DiscountKind:  input.DiscountKind,
		DiscountValue: input.DiscountValue,
		MinOrderValue: input.MinOrderValue,
		UsageLimit:    input.UsageLimit,
		ExpiresAt:     input.ExpiresAt,
		IsActive:      true,
	}
	if input.Description != "" {
		c.Description = &input.Description
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *couponUseCase) GetCoupon(ctx context.Context, id string) (*model.Coupon, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *couponUseCase) ListCoupons(ctx context.Context, filters *dto.CouponFilters) ([]model.Coupon, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *couponUseCase) UpdateCoupon(ctx context.Context, input *dto.UpdateCouponInput) (*model.Coupon, error) {
	c, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.MerchantID != input.MerchantID {
		return nil, coupon.ErrNotFound
	}
	if err := validateDiscount(input.DiscountKind, input.DiscountValue); err != nil {
		return nil, err
	}

	c.DiscountKind = input.DiscountKind
	c.DiscountValue = input.DiscountValue
	c.MinOrderValue = input.MinOrderValue
	c.UsageLimit = input.UsageLimit
	c.ExpiresAt = input.ExpiresAt
	c.IsActive = input.IsActive
	c.Description = nil
	if input.Description != "" {
		c.Description = &input.Description
	}
	c.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *couponUseCase) DeleteCoupon(ctx context.Context, merchantID, id string) error {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil || c.MerchantID != merchantID {
		return nil
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *couponUseCase) Redeem(ctx context.Context, input *dto.RedeemCouponInput) (*dto.RedeemResult, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))

	c, err := uc.repo.FindByCode(ctx, input.MerchantID, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, coupon.ErrNotFound
	}
	if !c.IsActive {
		return nil, coupon.ErrInactive
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(time.Now()) {
		return nil, coupon.ErrExpired
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return nil, coupon.ErrExhausted
	}
	if input.OrderValue < c.MinOrderValue {
		return nil, errors.New("order value below coupon minimum")
	}

	discount := c.DiscountValue
	if c.DiscountKind == model.DiscountKindPercent {
		discount = input.OrderValue * c.DiscountValue / 100
	}
	discount = math.Min(discount, input.OrderValue)

	// The conditional update re-checks limits so concurrent redemptions
	// cannot push used_count past usage_limit.
	affected, err := uc.repo.IncrementUsage(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, coupon.ErrExhausted
	}

	return &dto.RedeemResult{
		CouponID:   c.ID,
		Code:       c.Code,
		OrderValue: input.OrderValue,
		Discount:   discount,
		Payable:    input.OrderValue - discount,
	}, nil
}
