package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nakula/catalog-admin-service/internal/lot"
	"github.com/nakula/catalog-admin-service/internal/lot/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/pkg/cache"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type lotUseCase struct {
	repo   lot.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewLotUseCase(repo lot.Repository, cache *cache.RedisClient, log logger.ZapLogger) lot.UseCase {
	return &lotUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *lotUseCase) CreateLot(ctx context.Context, input *dto.CreateLotInput) (*model.Lot, error) {
	existing, err := uc.repo.FindByNumber(ctx, input.MerchantID, input.LotNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, lot.ErrLotNumberTaken
	}

	id := uuid.New().String()
	now := time.Now()

	l := &model.Lot{
		BaseModel: model.BaseModel{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID:      input.MerchantID,
		LotNumber:       input.LotNumber,
		CurrentQuantity: input.InitialQuantity,
		InitialQuantity: input.InitialQuantity,
		ReceivedAt:      input.ReceivedAt,
		ExpiresAt:       input.ExpiresAt,
		Notes:           &input.Notes,
	}

	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	if input.InitialQuantity != 0 {
		movement := &model.LotMovement{
			ID:             uuid.New().String(),
			MerchantID:     input.MerchantID,
			LotID:          id,
			MovementType:   "received",
			QuantityChange: input.InitialQuantity,
			QuantityBefore: 0,
			QuantityAfter:  input.InitialQuantity,
			Notes:          "Initial receipt",
			CreatedAt:      now,
		}
		if err := uc.repo.LogMovement(ctx, movement); err != nil {
			uc.logger.Error("failed to log initial lot movement", zap.Error(err))
		}
	}

	return l, nil
}

func (uc *lotUseCase) GetLot(ctx context.Context, id string) (*model.Lot, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *lotUseCase) ListLots(ctx context.Context, filters *dto.LotFilters) ([]model.Lot, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *lotUseCase) UpdateLot(ctx context.Context, input *dto.UpdateLotInput) (*model.Lot, error) {
	l, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if l == nil || l.MerchantID != input.MerchantID {
		return nil, lot.ErrNotFound
	}

	if input.LotNumber != l.LotNumber {
		existing, err := uc.repo.FindByNumber(ctx, input.MerchantID, input.LotNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, lot.ErrLotNumberTaken
		}
	}

	l.LotNumber = input.LotNumber
	l.ExpiresAt = input.ExpiresAt
	l.Notes = &input.Notes
	l.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *lotUseCase) DeleteLot(ctx context.Context, merchantID, id string) error {
	l, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if l == nil || l.MerchantID != merchantID {
		return nil
	}
	return uc.repo.Delete(ctx, id)
}

// AdjustQuantity applies a manual quantity change under a per-lot Redis
// lock so concurrent adjustments and order draw-downs serialize.
func (uc *lotUseCase) AdjustQuantity(ctx context.Context, input *dto.AdjustQuantityInput) (*model.Lot, error) {
	lockKey := fmt.Sprintf("lock:lot:%s:%s", input.MerchantID, input.LotID)
	unlock, err := uc.acquireLock(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	l, err := uc.repo.FindByID(ctx, input.LotID)
	if err != nil {
		return nil, err
	}
	if l == nil || l.MerchantID != input.MerchantID {
		return nil, lot.ErrNotFound
	}

	now := time.Now()
	quantityBefore := l.CurrentQuantity
	l.CurrentQuantity += input.QuantityChange
	l.UpdatedAt = now

	if l.CurrentQuantity < 0 {
		return nil, lot.ErrInsufficientQuantity
	}

	var refID *string
	if input.ReferenceID != "" {
		refID = &input.ReferenceID
	}
	var refType *string
	if input.ReferenceType != "" {
		refType = &input.ReferenceType
	}

	movement := &model.LotMovement{
		ID:             uuid.New().String(),
		MerchantID:     input.MerchantID,
		LotID:          l.ID,
		MovementType:   "adjustment",
		QuantityChange: input.QuantityChange,
		QuantityBefore: quantityBefore,
		QuantityAfter:  l.CurrentQuantity,
		ReferenceType:  refType,
		ReferenceID:    refID,
		Notes:          input.Reason,
		CreatedAt:      now,
	}

	if err := uc.repo.AdjustQuantityWithMovement(ctx, l, movement); err != nil {
		return nil, err
	}

	return l, nil
}

// DrawDownForSku deducts an order item's quantity from the lot its SKU is
// linked to. SKUs with no lot link are skipped by the caller.
func (uc *lotUseCase) DrawDownForSku(ctx context.Context, merchantID, skuID string, quantity float64, orderID string) error {
	lots, err := uc.repo.FindBySkus(ctx, merchantID, []string{skuID})
	if err != nil {
		return err
	}
	l, ok := lots[skuID]
	if !ok {
		return nil // sku not lot-tracked
	}

	_, err = uc.AdjustQuantity(ctx, &dto.AdjustQuantityInput{
		MerchantID:     merchantID,
		LotID:          l.ID,
		QuantityChange: -quantity,
		Reason:         "Order sale",
		ReferenceID:    orderID,
		ReferenceType:  "sale",
		UserID:         "system",
	})
	return err
}

func (uc *lotUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.LotMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

// acquireLock retries a few times before giving up; adjustments are short.
func (uc *lotUseCase) acquireLock(ctx context.Context, key string) (func(), error) {
	if uc.cache == nil {
		return func() {}, nil
	}

	value := uuid.New().String()
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, key, value, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire lot lock", zap.Error(err))
		}
		if ok {
			return func() {
				if err := uc.cache.ReleaseLock(context.Background(), key, value); err != nil {
					uc.logger.Error("failed to release lot lock", zap.Error(err))
				}
			}, nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	return nil, lot.ErrBusy
}
