package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/nakula/catalog-admin-service/internal/auth"
	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/internal/product"
	"github.com/nakula/catalog-admin-service/internal/product/dto"
	"github.com/nakula/catalog-admin-service/internal/variant"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type fakeUseCase struct {
	product *model.Product

	generateDrafts []variant.SkuDraft
	generateErr    error
	replaceSkus    []model.Sku
	replaceErr     error
	replaceInput   *dto.ReplaceSkusInput
}

func (f *fakeUseCase) CreateProduct(_ context.Context, _ *dto.CreateProductInput) (*model.Product, error) {
	return f.product, nil
}

func (f *fakeUseCase) GetProduct(_ context.Context, id string) (*model.Product, error) {
	if f.product != nil && f.product.ID == id {
		return f.product, nil
	}
	return nil, nil
}

func (f *fakeUseCase) ListProducts(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	if f.product == nil {
		return nil, 0, nil
	}
	return []model.Product{*f.product}, 1, nil
}

func (f *fakeUseCase) UpdateProduct(_ context.Context, _ *dto.UpdateProductInput) (*model.Product, error) {
	return f.product, nil
}

func (f *fakeUseCase) DeleteProduct(_ context.Context, _, _ string) error { return nil }

func (f *fakeUseCase) GenerateVariants(_ context.Context, _ *dto.GenerateVariantsInput) ([]variant.SkuDraft, error) {
	return f.generateDrafts, f.generateErr
}

func (f *fakeUseCase) ListSkus(_ context.Context, _, _ string) ([]model.Sku, error) {
	return f.replaceSkus, nil
}

func (f *fakeUseCase) ReplaceSkus(_ context.Context, input *dto.ReplaceSkusInput) ([]model.Sku, error) {
	f.replaceInput = input
	return f.replaceSkus, f.replaceErr
}

func newTestServer(uc product.UseCase) *httptest.Server {
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"})
	h := NewProductHandler(uc, log)

	r := chi.NewRouter()
	r.Use(auth.Middleware)
	r.Group(h.Routes)
	return httptest.NewServer(r)
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("X-Merchant-ID", "m1")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestGetProductScopedToMerchant(t *testing.T) {
	t.Parallel()

	uc := &fakeUseCase{product: &model.Product{
		BaseModel:  model.BaseModel{ID: "p1"},
		MerchantID: "m1",
		Name:       "Shirt",
	}}
	srv := newTestServer(uc)
	defer srv.Close()

	resp := doJSON(t, http.MethodGet, srv.URL+"/products/p1", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the same product is invisible to another merchant
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/products/p1", nil)
	require.NoError(t, err)
	req.Header.Set("X-Merchant-ID", "other")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestCreateProductRequiresMerchantHeader(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeUseCase{})
	defer srv.Close()

	body, _ := json.Marshal(map[string]string{"name": "Shirt", "slug": "shirt"})
	resp, err := http.Post(srv.URL+"/products", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGenerateVariantsReturnsDrafts(t *testing.T) {
	t.Parallel()

	uc := &fakeUseCase{
		generateDrafts: []variant.SkuDraft{
			{Code: "shirt-red", Attributes: variant.Combination{{AttributeID: "color", Value: "red"}}},
			{Code: "shirt-blue", Attributes: variant.Combination{{AttributeID: "color", Value: "blue"}}},
		},
	}
	srv := newTestServer(uc)
	defer srv.Close()

	resp := doJSON(t, http.MethodPost, srv.URL+"/products/p1/variants/generate", map[string]interface{}{
		"axes": []map[string]interface{}{
			{"attribute_id": "color", "values": []string{"red", "blue"}},
		},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Skus  []variant.SkuDraft `json:"skus"`
		Total int                `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, 2, got.Total)
	require.Equal(t, "shirt-red", got.Skus[0].Code)
}

func TestGenerateVariantsUnknownProduct(t *testing.T) {
	t.Parallel()

	uc := &fakeUseCase{generateErr: product.ErrNotFound}
	srv := newTestServer(uc)
	defer srv.Close()

	resp := doJSON(t, http.MethodPost, srv.URL+"/products/nope/variants/generate", map[string]interface{}{
		"axes": []map[string]interface{}{},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReplaceSkusDuplicateCombinationConflict(t *testing.T) {
	t.Parallel()

	uc := &fakeUseCase{replaceErr: product.ErrDuplicateCombination}
	srv := newTestServer(uc)
	defer srv.Close()

	resp := doJSON(t, http.MethodPut, srv.URL+"/products/p1/skus", map[string]interface{}{
		"skus": []map[string]interface{}{},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestReplaceSkusPassesDraftsThrough(t *testing.T) {
	t.Parallel()

	uc := &fakeUseCase{}
	srv := newTestServer(uc)
	defer srv.Close()

	resp := doJSON(t, http.MethodPut, srv.URL+"/products/p1/skus", map[string]interface{}{
		"skus": []map[string]interface{}{
			{
				"server_id": "s1",
				"sku_code":  "shirt-red",
				"stock":     4,
				"attributes": []map[string]string{
					{"attribute_id": "color", "value": "red"},
				},
			},
		},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, uc.replaceInput)
	require.Equal(t, "m1", uc.replaceInput.MerchantID)
	require.Equal(t, "p1", uc.replaceInput.ProductID)
	require.Len(t, uc.replaceInput.Drafts, 1)
	require.Equal(t, "s1", uc.replaceInput.Drafts[0].ServerID)
	require.Equal(t, 4, uc.replaceInput.Drafts[0].Stock)
}
