package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nakula/catalog-admin-service/internal/attribute"
	"github.com/nakula/catalog-admin-service/internal/attribute/dto"
	"github.com/nakula/catalog-admin-service/internal/auth"
	"github.com/nakula/catalog-admin-service/pkg/httpx"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type AttributeHandler struct {
	uc     attribute.UseCase
	logger logger.ZapLogger
}

func NewAttributeHandler(uc attribute.UseCase, log logger.ZapLogger) *AttributeHandler {
	return &AttributeHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AttributeHandler) Routes(r chi.Router) {
	r.Route("/attributes", func(rt chi.Router) {
		rt.Get("/", h.list)
		rt.Post("/", h.create)
		rt.Get("/{id}", h.get)
		rt.Put("/{id}", h.update)
		rt.Delete("/{id}", h.delete)
	})
}

type attributeRequest struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options"`
	IsActive *bool    `json:"is_active"`
}

func (h *AttributeHandler) create(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req attributeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		httpx.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}

	attr, err := h.uc.CreateAttribute(r.Context(), &dto.CreateAttributeInput{
		MerchantID: merchantID,
		Name:       req.Name,
		Kind:       req.Kind,
		Options:    req.Options,
	})
	if err != nil {
		h.logger.Error("failed to create attribute", zap.Error(err))
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, attr)
}

func (h *AttributeHandler) get(w http.ResponseWriter, r *http.Request) {
	attr, err := h.uc.GetAttribute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if attr == nil || attr.MerchantID != auth.GetMerchantID(r.Context()) {
		httpx.RespondError(w, http.StatusNotFound, "attribute not found")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, attr)
}

func (h *AttributeHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := &dto.AttributeFilters{
		MerchantID:  auth.GetMerchantID(r.Context()),
		SearchQuery: q.Get("search"),
		Page:        httpx.QueryInt(q.Get("page"), 1),
		PageSize:    httpx.QueryInt(q.Get("page_size"), 0),
	}
	if v := q.Get("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}

	attrs, count, err := h.uc.ListAttributes(r.Context(), filters)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"attributes": attrs,
		"total":      count,
	})
}

func (h *AttributeHandler) update(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req attributeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	attr, err := h.uc.UpdateAttribute(r.Context(), &dto.UpdateAttributeInput{
		ID:         chi.URLParam(r, "id"),
		MerchantID: merchantID,
		Name:       req.Name,
		Kind:       req.Kind,
		Options:    req.Options,
		IsActive:   isActive,
	})
	if err != nil {
		h.logger.Error("failed to update attribute", zap.Error(err))
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	httpx.RespondJSON(w, http.StatusOK, attr)
}

func (h *AttributeHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteAttribute(r.Context(), auth.GetMerchantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("failed to delete attribute", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.RespondJSON(w, http.StatusNoContent, nil)
}
