package admin

import (
	"net/http"
	"time"

	httpserver "github.com/sanjkatariya/infraFix/internal/http"
	"github.com/sanjkatariya/infraFix/internal/models"
	"github.com/sanjkatariya/infraFix/internal/session"
)

type sessionItem struct {
	Token     string      `json:"token"`
	UserID    string      `json:"userId"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	ExpiresAt *time.Time  `json:"expiresAt"`
}

// ListSessionsHandler returns the live login sessions. Tokens are masked to
// their first characters. Access: admin role, enforced by the router.
func ListSessionsHandler(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		entries := sessions.List()
		out := make([]sessionItem, 0, len(entries))
		for _, e := range entries {
			item := sessionItem{
				Token:  maskToken(e.Token),
				UserID: e.User.ID,
				Email:  e.User.Email,
				Role:   e.User.Role,
			}
			if !e.Expiry.IsZero() {
				exp := e.Expiry
				item.ExpiresAt = &exp
			}
			out = append(out, item)
		}
		httpserver.List(w, out)
	}
}

func maskToken(tok string) string {
	const keep = 20
	if len(tok) <= keep {
		return tok
	}
	return tok[:keep] + "..."
}
