package middleware

import (
	"context"
	"net/http"

	"github.com/sanjkatariya/infraFix/internal/httpctx"
)

// private context keys for logging enrichment
type ctxKey string

const (
	ctxLogUserID ctxKey = "log_user_id"
	ctxLogRole   ctxKey = "log_role"
)

// EnrichLogger stores user_id/role into context for logging handlers to pick up.
func EnrichLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if uid, ok := httpctx.UserID(ctx); ok {
			ctx = context.WithValue(ctx, ctxLogUserID, uid)
		}
		if role, ok := httpctx.Role(ctx); ok {
			ctx = context.WithValue(ctx, ctxLogRole, string(role))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLogUserID returns the enriched user id if set.
func GetLogUserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxLogUserID).(string)
	return v, ok && v != ""
}

// GetLogRole returns the enriched role if set.
func GetLogRole(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxLogRole).(string)
	return v, ok && v != ""
}
