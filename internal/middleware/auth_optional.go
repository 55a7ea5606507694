package middleware

import (
	"net/http"

	"github.com/sanjkatariya/infraFix/internal/auth"
	"github.com/sanjkatariya/infraFix/internal/security"
	"github.com/sanjkatariya/infraFix/internal/session"
)

// OptionalAuth looks up the bearer token and, when it names a live session
// that has not been revoked, injects session and user into the context.
// It never returns 401; on any failure it passes the request through
// unauthenticated.
func OptionalAuth(sessions *session.Store, deny *security.Denylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			tok := auth.BearerToken(req)
			if tok == "" || deny.IsTokenRevoked(tok) {
				next.ServeHTTP(w, req)
				return
			}
			sess, ok := sessions.Get(tok)
			if !ok {
				next.ServeHTTP(w, req)
				return
			}
			next.ServeHTTP(w, req.WithContext(auth.WithSession(req.Context(), &sess)))
		})
	}
}
