package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nakula/catalog-admin-service/internal/lot"
	"github.com/nakula/catalog-admin-service/internal/lot/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type fakeLotRepo struct {
	lots    map[string]*model.Lot
	bySku   map[string]*model.Lot
	movements []model.LotMovement
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{
		lots:  map[string]*model.Lot{},
		bySku: map[string]*model.Lot{},
	}
}

func (r *fakeLotRepo) Create(_ context.Context, l *model.Lot) error {
	r.lots[l.ID] = l
	return nil
}

func (r *fakeLotRepo) FindByID(_ context.Context, id string) (*model.Lot, error) {
	l, ok := r.lots[id]
	if !ok {
		return nil, nil
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLotRepo) FindByNumber(_ context.Context, merchantID, lotNumber string) (*model.Lot, error) {
	for _, l := range r.lots {
		if l.MerchantID == merchantID && l.LotNumber == lotNumber {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLotRepo) FindAll(_ context.Context, _ *dto.LotFilters) ([]model.Lot, int, error) {
	return nil, 0, nil
}

func (r *fakeLotRepo) Update(_ context.Context, l *model.Lot) error {
	r.lots[l.ID] = l
	return nil
}

func (r *fakeLotRepo) Delete(_ context.Context, id string) error {
	delete(r.lots, id)
	return nil
}

func (r *fakeLotRepo) FindBySkus(_ context.Context, merchantID string, skuIDs []string) (map[string]*model.Lot, error) {
	out := map[string]*model.Lot{}
	for _, id := range skuIDs {
		if l, ok := r.bySku[id]; ok && l.MerchantID == merchantID {
			out[id] = l
		}
	}
	return out, nil
}

func (r *fakeLotRepo) LogMovement(_ context.Context, m *model.LotMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeLotRepo) ListMovements(_ context.Context, _ *dto.MovementFilters) ([]model.LotMovement, int, error) {
	return r.movements, len(r.movements), nil
}

func (r *fakeLotRepo) AdjustQuantityWithMovement(_ context.Context, l *model.Lot, m *model.LotMovement) error {
	r.lots[l.ID] = l
	r.movements = append(r.movements, *m)
	return nil
}

func newLotUC(repo *fakeLotRepo) lot.UseCase {
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"})
	return NewLotUseCase(repo, nil, log)
}

func seedLot(repo *fakeLotRepo, qty float64) *model.Lot {
	l := &model.Lot{
		BaseModel:       model.BaseModel{ID: "l1"},
		MerchantID:      "m1",
		LotNumber:       "LOT-001",
		CurrentQuantity: qty,
		InitialQuantity: qty,
	}
	repo.lots[l.ID] = l
	return l
}

func TestCreateLotLogsInitialReceipt(t *testing.T) {
	t.Parallel()

	repo := newFakeLotRepo()
	uc := newLotUC(repo)

	l, err := uc.CreateLot(context.Background(), &dto.CreateLotInput{
		MerchantID:      "m1",
		LotNumber:       "LOT-001",
		InitialQuantity: 50,
	})
	require.NoError(t, err)
	require.Equal(t, 50.0, l.CurrentQuantity)

	require.Len(t, repo.movements, 1)
	require.Equal(t, "received", repo.movements[0].MovementType)
	require.Equal(t, 50.0, repo.movements[0].QuantityAfter)
}

func TestCreateLotRejectsDuplicateNumber(t *testing.T) {
	t.Parallel()

	repo := newFakeLotRepo()
	seedLot(repo, 10)
	uc := newLotUC(repo)

	_, err := uc.CreateLot(context.Background(), &dto.CreateLotInput{
		MerchantID: "m1",
		LotNumber:  "LOT-001",
	})
	require.ErrorIs(t, err, lot.ErrLotNumberTaken)

	// other merchants can reuse the number
	_, err = uc.CreateLot(context.Background(), &dto.CreateLotInput{
		MerchantID: "m2",
		LotNumber:  "LOT-001",
	})
	require.NoError(t, err)
}

func TestAdjustQuantityRecordsMovement(t *testing.T) {
	t.Parallel()

	repo := newFakeLotRepo()
	seedLot(repo, 10)
	uc := newLotUC(repo)

	l, err := uc.AdjustQuantity(context.Background(), &dto.AdjustQuantityInput{
		MerchantID:     "m1",
		LotID:          "l1",
		QuantityChange: -4,
		Reason:         "damaged stock",
		ReferenceType:  "manual_adjustment",
	})
	require.NoError(t, err)
	require.Equal(t, 6.0, l.CurrentQuantity)

	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	require.Equal(t, "adjustment", m.MovementType)
	require.Equal(t, 10.0, m.QuantityBefore)
	require.Equal(t, 6.0, m.QuantityAfter)
}

func TestAdjustQuantityRejectsOverdraw(t *testing.T) {
	t.Parallel()

	repo := newFakeLotRepo()
	seedLot(repo, 3)
	uc := newLotUC(repo)

	_, err := uc.AdjustQuantity(context.Background(), &dto.AdjustQuantityInput{
		MerchantID:     "m1",
		LotID:          "l1",
		QuantityChange: -5,
	})
	require.ErrorIs(t, err, lot.ErrInsufficientQuantity)
	require.Empty(t, repo.movements)
	require.Equal(t, 3.0, repo.lots["l1"].CurrentQuantity)
}

func TestAdjustQuantityForeignMerchant(t *testing.T) {
	t.Parallel()

	repo := newFakeLotRepo()
	seedLot(repo, 10)
	uc := newLotUC(repo)

	_, err := uc.AdjustQuantity(context.Background(), &dto.AdjustQuantityInput{
		MerchantID:     "other",
		LotID:          "l1",
		QuantityChange: -1,
	})
	require.ErrorIs(t, err, lot.ErrNotFound)
}

func TestDrawDownForSku(t *testing.T) {
	t.Parallel()

	repo := newFakeLotRepo()
	l := seedLot(repo, 20)
	repo.bySku["sku-1"] = l
	uc := newLotUC(repo)

	err := uc.DrawDownForSku(context.Background(), "m1", "sku-1", 5, "order-9")
	require.NoError(t, err)
	require.Equal(t, 15.0, repo.lots["l1"].CurrentQuantity)

	require.Len(t, repo.movements, 1)
	require.NotNil(t, repo.movements[0].ReferenceID)
	require.Equal(t, "order-9", *repo.movements[0].ReferenceID)
}

func TestDrawDownForSkuNotLotTracked(t *testing.T) {
	t.Parallel()

	repo := newFakeLotRepo()
	seedLot(repo, 20)
	uc := newLotUC(repo)

	err := uc.DrawDownForSku(context.Background(), "m1", "untracked-sku", 5, "order-9")
	require.NoError(t, err)
	require.Empty(t, repo.movements)
	require.Equal(t, 20.0, repo.lots["l1"].CurrentQuantity)
}
