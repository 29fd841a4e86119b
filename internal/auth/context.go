package auth

import (
	"context"
	"net/http"
)

type contextKey string

const (
	merchantIDKey contextKey = "merchant_id"
	userIDKey     contextKey = "user_id"
)

// Middleware copies the caller identity headers set by the auth gateway
// into the request context. Token verification happens upstream; this
// service only consumes the resolved identity.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if v := r.Header.Get("X-Merchant-ID"); v != "" {
			ctx = context.WithValue(ctx, merchantIDKey, v)
		}
		if v := r.Header.Get("X-User-ID"); v != "" {
			ctx = context.WithValue(ctx, userIDKey, v)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetMerchantID(ctx context.Context) string {
	if val, ok := ctx.Value(merchantIDKey).(string); ok {
		return val
	}
	return ""
}

func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(userIDKey).(string); ok {
		return val
	}
	return ""
}
