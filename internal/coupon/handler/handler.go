package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nakula/catalog-admin-service/internal/auth"
	"github.com/nakula/catalog-admin-service/internal/coupon"
	"github.com/nakula/catalog-admin-service/internal/coupon/dto"
	"github.com/nakula/catalog-admin-service/pkg/httpx"
	"github.com/nakula/catalog-admin-service/pkg/logger"
)

type CouponHandler struct {
	uc     coupon.UseCase
	logger logger.ZapLogger
}

func NewCouponHandler(uc coupon.UseCase, log logger.ZapLogger) *CouponHandler {
	return &CouponHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CouponHandler) Routes(r chi.Router) {
	r.Route("/coupons", func(rt chi.Router) {
		rt.Get("/", h.list)
		rt.Post("/", h.create)
		rt.Post("/redeem", h.redeem)
		rt.Get("/{id}", h.get)
		rt.Put("/{id}", h.update)
		rt.Delete("/{id}", h.delete)
	})
}

type couponRequest struct {
	Code          string     `json:"code"`
	Description   string     `json:"description"`
	DiscountKind  string     `json:"discount_kind"`
	DiscountValue float64    `json:"discount_value"`
	MinOrderValue float64    `json:"min_order_value"`
	UsageLimit    int        `json:"usage_limit"`
	ExpiresAt     *time.Time `json:"expires_at"`
	IsActive      bool       `json:"is_active"`
}

func (h *CouponHandler) create(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req couponRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	c, err := h.uc.CreateCoupon(r.Context(), &dto.CreateCouponInput{
		MerchantID:    merchantID,
		Code:          req.Code,
		Description:   req.Description,
		DiscountKind:  req.DiscountKind,
		DiscountValue: req.DiscountValue,
		MinOrderValue: req.MinOrderValue,
		UsageLimit:    req.UsageLimit,
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		h.respondError(w, "failed to create coupon", err)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, c)
}

func (h *CouponHandler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.uc.GetCoupon(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c == nil || c.MerchantID != auth.GetMerchantID(r.Context()) {
		httpx.RespondError(w, http.StatusNotFound, "coupon not found")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, c)
}

func (h *CouponHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := &dto.CouponFilters{
		MerchantID:  auth.GetMerchantID(r.Context()),
		SearchQuery: q.Get("search"),
		Page:        httpx.QueryInt(q.Get("page"), 1),
		PageSize:    httpx.QueryInt(q.Get("page_size"), 0),
	}
	if v := q.Get("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}

	coupons, count, err := h.uc.ListCoupons(r.Context(), filters)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"coupons": coupons,
		"total":   count,
	})
}

func (h *CouponHandler) update(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req couponRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	c, err := h.uc.UpdateCoupon(r.Context(), &dto.UpdateCouponInput{
		ID:            chi.URLParam(r, "id"),
		MerchantID:    merchantID,
		Description:   req.Description,
		DiscountKind:  req.DiscountKind,
		DiscountValue: req.DiscountValue,
		MinOrderValue: req.MinOrderValue,
		UsageLimit:    req.UsageLimit,
		ExpiresAt:     req.ExpiresAt,
		IsActive:      req.IsActive,
	})
	if err != nil {
		h.respondError(w, "failed to update coupon", err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, c)
}

func (h *CouponHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteCoupon(r.Context(), auth.GetMerchantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("failed to delete coupon", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.RespondJSON(w, http.StatusNoContent, nil)
}

type redeemRequest struct {
	Code       string  `json:"code"`
	OrderValue float64 `json:"order_value"`
}

func (h *CouponHandler) redeem(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req redeemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	result, err := h.uc.Redeem(r.Context(), &dto.RedeemCouponInput{
		MerchantID: merchantID,
		Code:       req.Code,
		OrderValue: req.OrderValue,
	})
	if err != nil {
		h.respondError(w, "failed to redeem coupon", err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, result)
}

func (h *CouponHandler) respondError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, coupon.ErrNotFound):
		httpx.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, coupon.ErrCodeTaken),
		errors.Is(err, coupon.ErrExpired),
		errors.Is(err, coupon.ErrExhausted),
		errors.Is(err, coupon.ErrInactive):
		httpx.RespondError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error(msg, zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
