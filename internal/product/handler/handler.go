package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nakula/catalog-admin-service/internal/auth"
	"github.com/nakula/catalog-admin-service/internal/product"
	"github.com/nakula/catalog-admin-service/internal/product/dto"
	"github.com/nakula/catalog-admin-service/internal/variant"
	"github.com/nakula/catalog-admin-service/pkg/httpx"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Routes(r chi.Router) {
	r.Route("/products", func(rt chi.Router) {
		rt.Get("/", h.list)
		rt.Post("/", h.create)
		rt.Get("/{id}", h.get)
		rt.Put("/{id}", h.update)
		rt.Delete("/{id}", h.delete)

		rt.Get("/{id}/skus", h.listSkus)
		rt.Put("/{id}/skus", h.replaceSkus)
		rt.Post("/{id}/variants/generate", h.generateVariants)
	})
}

type productRequest struct {
	CategoryID   string  `json:"category_id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description"`
	MRP          float64 `json:"mrp"`
	SellingPrice float64 `json:"selling_price"`
	CostPrice    float64 `json:"cost_price"`
	TaxRate      float64 `json:"tax_rate"`
	ImageURL     string  `json:"image_url"`
	IsActive     *bool   `json:"is_active"`
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" || req.Slug == "" {
		httpx.RespondError(w, http.StatusBadRequest, "name and slug are required")
		return
	}

	p, err := h.uc.CreateProduct(r.Context(), &dto.CreateProductInput{
		MerchantID:   merchantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		MRP:          req.MRP,
		SellingPrice: req.SellingPrice,
		CostPrice:    req.CostPrice,
		TaxRate:      req.TaxRate,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		h.respondError(w, "failed to create product", err)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil || p.MerchantID != auth.GetMerchantID(r.Context()) {
		httpx.RespondError(w, http.StatusNotFound, "product not found")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := &dto.ProductFilters{
		MerchantID:  auth.GetMerchantID(r.Context()),
		CategoryID:  q.Get("category_id"),
		SearchQuery: q.Get("search"),
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
		Page:        httpx.QueryInt(q.Get("page"), 1),
		PageSize:    httpx.QueryInt(q.Get("page_size"), 20),
	}
	if v := q.Get("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}

	products, count, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    count,
	})
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p, err := h.uc.UpdateProduct(r.Context(), &dto.UpdateProductInput{
		ID:           chi.URLParam(r, "id"),
		MerchantID:   merchantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		MRP:          req.MRP,
		SellingPrice: req.SellingPrice,
		CostPrice:    req.CostPrice,
		TaxRate:      req.TaxRate,
		ImageURL:     req.ImageURL,
		IsActive:     isActive,
	})
	if err != nil {
		h.respondError(w, "failed to update product", err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteProduct(r.Context(), auth.GetMerchantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("failed to delete product", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.RespondJSON(w, http.StatusNoContent, nil)
}

type generateVariantsRequest struct {
	Axes []variant.Axis `json:"axes"`
}

func (h *ProductHandler) generateVariants(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req generateVariantsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	drafts, err := h.uc.GenerateVariants(r.Context(), &dto.GenerateVariantsInput{
		MerchantID: merchantID,
		ProductID:  chi.URLParam(r, "id"),
		Axes:       req.Axes,
	})
	if err != nil {
		h.respondError(w, "failed to generate variants", err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"skus":  drafts,
		"total": len(drafts),
	})
}

func (h *ProductHandler) listSkus(w http.ResponseWriter, r *http.Request) {
	skus, err := h.uc.ListSkus(r.Context(), auth.GetMerchantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, "failed to list skus", err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"skus":  skus,
		"total": len(skus),
	})
}

type replaceSkusRequest struct {
	Skus []variant.SkuDraft `json:"skus"`
}

func (h *ProductHandler) replaceSkus(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req replaceSkusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	skus, err := h.uc.ReplaceSkus(r.Context(), &dto.ReplaceSkusInput{
		MerchantID: merchantID,
		ProductID:  chi.URLParam(r, "id"),
		Drafts:     req.Skus,
	})
	if err != nil {
		h.respondError(w, "failed to replace skus", err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"skus":  skus,
		"total": len(skus),
	})
}

func (h *ProductHandler) respondError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		httpx.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, product.ErrSlugTaken), errors.Is(err, product.ErrDuplicateCombination):
		httpx.RespondError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error(msg, zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
