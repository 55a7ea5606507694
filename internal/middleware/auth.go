package middleware

import (
	"net/http"

	"github.com/sanjkatariya/infraFix/internal/auth"
	httpserver "github.com/sanjkatariya/infraFix/internal/http"
)

// RequireAuth rejects requests without an Authorization header. The token
// itself is not verified here; OptionalAuth has already attached a session
// if the token is one this server issued.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !auth.HasAuthorization(req) {
			httpserver.Fail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, req)
	})
}
