package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nakula/catalog-admin-service/internal/auth"
	"github.com/nakula/catalog-admin-service/internal/lot"
	"github.com/nakula/catalog-admin-service/internal/lot/dto"
	"github.com/nakula/catalog-admin-service/pkg/httpx"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type LotHandler struct {
	uc     lot.UseCase
	logger logger.ZapLogger
}

func NewLotHandler(uc lot.UseCase, log logger.ZapLogger) *LotHandler {
	return &LotHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *LotHandler) Routes(r chi.Router) {
	r.Route("/lots", func(rt chi.Router) {
		rt.Get("/", h.list)
		rt.Post("/", h.create)
		rt.Get("/{id}", h.get)
		rt.Put("/{id}", h.update)
		rt.Delete("/{id}", h.delete)
		rt.Post("/{id}/adjust", h.adjust)
		rt.Get("/{id}/movements", h.movements)
	})
}

type lotRequest struct {
	LotNumber       string     `json:"lot_number"`
	InitialQuantity float64    `json:"initial_quantity"`
	ReceivedAt      *time.Time `json:"received_at"`
	ExpiresAt       *time.Time `json:"expires_at"`
	Notes           string     `json:"notes"`
}

func (h *LotHandler) create(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req lotRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.LotNumber == "" {
		httpx.RespondError(w, http.StatusBadRequest, "lot_number is required")
		return
	}

	l, err := h.uc.CreateLot(r.Context(), &dto.CreateLotInput{
		MerchantID:      merchantID,
		LotNumber:       req.LotNumber,
		InitialQuantity: req.InitialQuantity,
		ReceivedAt:      req.ReceivedAt,
		ExpiresAt:       req.ExpiresAt,
		Notes:           req.Notes,
	})
	if err != nil {
		h.respondError(w, "failed to create lot", err)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, l)
}

func (h *LotHandler) get(w http.ResponseWriter, r *http.Request) {
	l, err := h.uc.GetLot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if l == nil || l.MerchantID != auth.GetMerchantID(r.Context()) {
		httpx.RespondError(w, http.StatusNotFound, "lot not found")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, l)
}

func (h *LotHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := &dto.LotFilters{
		MerchantID:  auth.GetMerchantID(r.Context()),
		SearchQuery: q.Get("search"),
		Page:        httpx.QueryInt(q.Get("page"), 1),
		PageSize:    httpx.QueryInt(q.Get("page_size"), 0),
	}
	if v := q.Get("depleted"); v != "" {
		depleted := v == "true"
		filters.Depleted = &depleted
	}

	lots, count, err := h.uc.ListLots(r.Context(), filters)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"lots":  lots,
		"total": count,
	})
}

func (h *LotHandler) update(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req lotRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	l, err := h.uc.UpdateLot(r.Context(), &dto.UpdateLotInput{
		ID:         chi.URLParam(r, "id"),
		MerchantID: merchantID,
		LotNumber:  req.LotNumber,
		ExpiresAt:  req.ExpiresAt,
		Notes:      req.Notes,
	})
	if err != nil {
		h.respondError(w, "failed to update lot", err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, l)
}

func (h *LotHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteLot(r.Context(), auth.GetMerchantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("failed to delete lot", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.RespondJSON(w, http.StatusNoContent, nil)
}

type adjustRequest struct {
	QuantityChange float64 `json:"quantity_change"`
	Reason         string  `json:"reason"`
}

func (h *LotHandler) adjust(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req adjustRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	l, err := h.uc.AdjustQuantity(r.Context(), &dto.AdjustQuantityInput{
		MerchantID:     merchantID,
		LotID:          chi.URLParam(r, "id"),
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		ReferenceType:  "manual_adjustment",
		UserID:         auth.GetUserID(r.Context()),
	})
	if err != nil {
		h.respondError(w, "failed to adjust lot", err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, l)
}

func (h *LotHandler) movements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	movements, count, err := h.uc.ListMovements(r.Context(), &dto.MovementFilters{
		MerchantID: auth.GetMerchantID(r.Context()),
		LotID:      chi.URLParam(r, "id"),
		Page:       httpx.QueryInt(q.Get("page"), 1),
		PageSize:   httpx.QueryInt(q.Get("page_size"), 50),
	})
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"movements": movements,
		"total":     count,
	})
}

func (h *LotHandler) respondError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, lot.ErrNotFound):
		httpx.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, lot.ErrLotNumberTaken):
		httpx.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, lot.ErrInsufficientQuantity):
		httpx.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, lot.ErrBusy):
		httpx.RespondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error(msg, zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
