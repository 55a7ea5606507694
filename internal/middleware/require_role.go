// internal/middleware/require_role.go
package middleware

import (
	"net/http"

	httpserver "github.com/sanjkatariya/infraFix/internal/http"
	"github.com/sanjkatariya/infraFix/internal/httpctx"
	"github.com/sanjkatariya/infraFix/internal/models"
)

var roleLevels = map[models.Role]int{
	models.RoleCitizen: 1,
	models.RoleAdmin:   2,
}

// RequireRole lets the request through when the session's role is at least
// the lowest of allowed. No session is 401, too low a role is 403.
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	minAllowedLevel := 9999
	for _, role := range allowed {
		if lvl, ok := roleLevels[role]; ok && lvl < minAllowedLevel {
			minAllowedLevel = lvl
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			role, ok := httpctx.Role(req.Context())
			if !ok {
				httpserver.Fail(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if roleLevels[role] < minAllowedLevel {
				httpserver.Fail(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
