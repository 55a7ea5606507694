package middleware

import (
	"net/http"

	"github.com/sanjkatariya/infraFix/internal/auth"
	httpserver "github.com/sanjkatariya/infraFix/internal/http"
	"github.com/sanjkatariya/infraFix/internal/security"
)

// Denylist rejects requests that present a revoked (logged out) token.
func Denylist(deny *security.Denylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := auth.BearerToken(r); tok != "" && deny.IsTokenRevoked(tok) {
				httpserver.Fail(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
