package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	attrdto "github.com/nakula/catalog-admin-service/internal/attribute/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/internal/product"
	"github.com/nakula/catalog-admin-service/internal/product/dto"
	"github.com/nakula/catalog-admin-service/internal/variant"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type fakeProductRepo struct {
	products map[string]*model.Product
	skus     map[string][]model.Sku

	replacedWith []model.Sku
	updated      *model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: map[string]*model.Product{},
		skus:     map[string][]model.Sku{},
	}
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.updated = p
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) IsSlugUnique(_ context.Context, _, _, _ string) (bool, error) {
	return true, nil
}

func (r *fakeProductRepo) ListSkus(_ context.Context, productID string) ([]model.Sku, error) {
	return r.skus[productID], nil
}

func (r *fakeProductRepo) ReplaceSkus(_ context.Context, productID string, skus []model.Sku) error {
	r.replacedWith = skus
	r.skus[productID] = skus
	return nil
}

type fakeAttributeRepo struct {
	names map[string]string // id -> display name
}

func (r *fakeAttributeRepo) Create(_ context.Context, _ *model.Attribute) error { return nil }

func (r *fakeAttributeRepo) FindByID(_ context.Context, _ string) (*model.Attribute, error) {
	return nil, nil
}

func (r *fakeAttributeRepo) FindByIDs(_ context.Context, _ string, ids []string) ([]model.Attribute, error) {
	var out []model.Attribute
	for _, id := range ids {
		if name, ok := r.names[id]; ok {
			out = append(out, model.Attribute{
				BaseModel: model.BaseModel{ID: id},
				Name:      name,
			})
		}
	}
	return out, nil
}

func (r *fakeAttributeRepo) FindAll(_ context.Context, _ *attrdto.AttributeFilters) ([]model.Attribute, int, error) {
	return nil, 0, nil
}

func (r *fakeAttributeRepo) Update(_ context.Context, _ *model.Attribute) error { return nil }
func (r *fakeAttributeRepo) Delete(_ context.Context, _ string) error           { return nil }

func newTestUseCase(repo *fakeProductRepo, attrs *fakeAttributeRepo) product.UseCase {
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"})
	return NewProductUseCase(repo, attrs, nil, nil, log)
}

func seedProduct(repo *fakeProductRepo) *model.Product {
	p := &model.Product{
		BaseModel:    model.BaseModel{ID: "p1"},
		MerchantID:   "m1",
		Name:         "Shirt",
		Slug:         "shirt",
		MRP:          100,
		SellingPrice: 90,
		CostPrice:    60,
	}
	repo.products[p.ID] = p
	return p
}

func TestGenerateVariantsPreservesExistingSkus(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	seedProduct(repo)
	lotID := "lot-1"
	repo.skus["p1"] = []model.Sku{
		{
			BaseModel:    model.BaseModel{ID: "s1"},
			ProductID:    "p1",
			Code:         "custom-code",
			MRP:          120,
			SellingPrice: 110,
			CostPrice:    70,
			Stock:        7,
			LotID:        &lotID,
			Attributes: model.SkuAttributes{
				{AttributeID: "color", Value: "red", AttributeName: "Color"},
			},
		},
	}
	attrs := &fakeAttributeRepo{names: map[string]string{"color": "Colour"}}
	uc := newTestUseCase(repo, attrs)

	drafts, err := uc.GenerateVariants(context.Background(), &dto.GenerateVariantsInput{
		MerchantID: "m1",
		ProductID:  "p1",
		Axes: []variant.Axis{
			{AttributeID: "color", Values: []string{"red", "blue"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	// red existed: identity match keeps server id, edits, stock and lot
	require.Equal(t, "s1", drafts[0].ServerID)
	require.Equal(t, "custom-code", drafts[0].Code)
	require.Equal(t, 7, drafts[0].Stock)
	require.Equal(t, "lot-1", drafts[0].LotID)
	require.Equal(t, 120.0, drafts[0].MRP)

	// blue is new: defaults come from the product
	require.Empty(t, drafts[1].ServerID)
	require.Equal(t, "shirt-blue", drafts[1].Code)
	require.Equal(t, 0, drafts[1].Stock)
	require.Equal(t, 100.0, drafts[1].MRP)
	require.Equal(t, 90.0, drafts[1].SellingPrice)
}

func TestGenerateVariantsUnknownProduct(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(newFakeProductRepo(), &fakeAttributeRepo{})

	_, err := uc.GenerateVariants(context.Background(), &dto.GenerateVariantsInput{
		MerchantID: "m1",
		ProductID:  "missing",
	})
	require.ErrorIs(t, err, product.ErrNotFound)
}

func TestGenerateVariantsForeignMerchant(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	seedProduct(repo)
	uc := newTestUseCase(repo, &fakeAttributeRepo{})

	_, err := uc.GenerateVariants(context.Background(), &dto.GenerateVariantsInput{
		MerchantID: "other-merchant",
		ProductID:  "p1",
	})
	require.ErrorIs(t, err, product.ErrNotFound)
}

func TestReplaceSkusRejectsDuplicateCombination(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	seedProduct(repo)
	uc := newTestUseCase(repo, &fakeAttributeRepo{})

	red := variant.Combination{{AttributeID: "color", Value: "red"}}
	_, err := uc.ReplaceSkus(context.Background(), &dto.ReplaceSkusInput{
		MerchantID: "m1",
		ProductID:  "p1",
		Drafts: []variant.SkuDraft{
			{Code: "shirt-red", Attributes: red},
			{Code: "shirt-red-2", Attributes: red},
		},
	})
	require.ErrorIs(t, err, product.ErrDuplicateCombination)
	require.Nil(t, repo.replacedWith)
}

func TestReplaceSkusPersistsExportedDrafts(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	seedProduct(repo)
	attrs := &fakeAttributeRepo{names: map[string]string{"color": "Colour"}}
	uc := newTestUseCase(repo, attrs)

	skus, err := uc.ReplaceSkus(context.Background(), &dto.ReplaceSkusInput{
		MerchantID: "m1",
		ProductID:  "p1",
		Drafts: []variant.SkuDraft{
			{
				ServerID:     "s1",
				Code:         "shirt-red",
				MRP:          100,
				SellingPrice: 90,
				Stock:        3,
				Attributes:   variant.Combination{{AttributeID: "color", Value: "red"}},
			},
			{
				Code:       "shirt-blue",
				MRP:        100,
				Attributes: variant.Combination{{AttributeID: "color", Value: "blue"}},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, skus, 2)

	// existing row keeps its server id, the new one gets a generated id
	require.Equal(t, "s1", skus[0].ID)
	require.NotEmpty(t, skus[1].ID)
	require.NotEqual(t, "s1", skus[1].ID)

	// names resolved against the current definitions
	require.Equal(t, "Colour", skus[0].Attributes[0].AttributeName)
	require.Equal(t, 3, skus[0].Stock)

	// product flips to variant mode
	require.NotNil(t, repo.updated)
	require.True(t, repo.updated.HasVariants)
}

func TestReplaceSkusEmptyClearsVariantMode(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	p := seedProduct(repo)
	p.HasVariants = true
	repo.skus["p1"] = []model.Sku{
		{BaseModel: model.BaseModel{ID: "s1"}, ProductID: "p1", Code: "shirt-red"},
	}
	uc := newTestUseCase(repo, &fakeAttributeRepo{})

	skus, err := uc.ReplaceSkus(context.Background(), &dto.ReplaceSkusInput{
		MerchantID: "m1",
		ProductID:  "p1",
	})
	require.NoError(t, err)
	require.Empty(t, skus)
	require.NotNil(t, repo.updated)
	require.False(t, repo.updated.HasVariants)
}
