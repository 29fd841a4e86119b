package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nakula/catalog-admin-service/internal/auth"
	"github.com/nakula/catalog-admin-service/internal/category"
	"github.com/nakula/catalog-admin-service/internal/category/dto"
	"github.com/nakula/catalog-admin-service/pkg/httpx"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Routes(r chi.Router) {
	r.Route("/categories", func(rt chi.Router) {
		rt.Get("/", h.list)
		rt.Post("/", h.create)
		rt.Get("/{id}", h.get)
		rt.Put("/{id}", h.update)
		rt.Delete("/{id}", h.delete)
	})
}

type categoryRequest struct {
	ParentID    *string `json:"parent_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

func (h *CategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req categoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		httpx.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}

	input := &dto.CreateCategoryInput{
		MerchantID:  merchantID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	}

	cat, err := h.uc.CreateCategory(r.Context(), input)
	if err != nil {
		h.respondError(w, "failed to create category", err)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) get(w http.ResponseWriter, r *http.Request) {
	cat, err := h.uc.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Strict multi-tenancy: a category belonging to another merchant is not found.
	if cat == nil || cat.MerchantID != auth.GetMerchantID(r.Context()) {
		httpx.RespondError(w, http.StatusNotFound, "category not found")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) list(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	q := r.URL.Query()

	filters := &dto.CategoryFilters{
		MerchantID: merchantID,
		Page:       httpx.QueryInt(q.Get("page"), 1),
		PageSize:   httpx.QueryInt(q.Get("page_size"), 0),
	}
	if v := q.Get("parent_id"); q.Has("parent_id") {
		filters.ParentID = &v
	}
	if v := q.Get("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}

	cats, count, err := h.uc.ListCategories(r.Context(), filters)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": cats,
		"total":      count,
	})
}

func (h *CategoryHandler) update(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req categoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	input := &dto.UpdateCategoryInput{
		ID:          chi.URLParam(r, "id"),
		MerchantID:  merchantID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
		IsActive:    isActive,
	}

	cat, err := h.uc.UpdateCategory(r.Context(), input)
	if err != nil {
		h.respondError(w, "failed to update category", err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteCategory(r.Context(), auth.GetMerchantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("failed to delete category", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *CategoryHandler) respondError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, category.ErrNotFound):
		httpx.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, category.ErrParentNotFound):
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(msg, zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
