// internal/auth/handlers.go
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	httpserver "github.com/sanjkatariya/infraFix/internal/http"
	"github.com/sanjkatariya/infraFix/internal/models"
	"github.com/sanjkatariya/infraFix/internal/security"
	"github.com/sanjkatariya/infraFix/internal/session"
)

// Handler serves the mock login flow. Any credentials are accepted; the
// role in the body decides which views the frontend shows.
type Handler struct {
	sessions *session.Store
	deny     *security.Denylist
}

func New(sessions *session.Store, deny *security.Denylist) *Handler {
	return &Handler{sessions: sessions, deny: deny}
}

type loginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=admin citizen"`
}

type loginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login handles POST /auth/login
// Body: { "email": "...", "password": "...", "role": "admin|citizen" }
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := httpserver.Decode(w, r, &body, false); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	user := MockUser(body.Role, body.Email)
	sess := h.sessions.Create(user)
	slog.InfoContext(r.Context(), "login", "user_id", user.ID, "role", user.Role)
	httpserver.OK(w, loginResponse{User: user, Token: sess.Token}, "Login successful")
}

// Logout handles POST /auth/logout. The presented token is dropped and
// revoked; logging out without a token still succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if tok := BearerToken(r); tok != "" {
		h.sessions.Delete(tok)
		h.deny.RevokeToken(tok)
		slog.DebugContext(r.Context(), "token revoked")
	}
	httpserver.Message(w, "Logout successful")
}

// Me handles GET /auth/me behind RequireAuth. Tokens this server did not
// issue still get the generic citizen profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	if u, ok := UserFromContext(r.Context()); ok {
		httpserver.OK(w, u, "")
		return
	}
	httpserver.OK(w, models.User{
		ID:    "1",
		Email: "user@example.com",
		Name:  "User",
		Role:  models.RoleCitizen,
	}, "")
}

// MockUser builds the identity handed out for a login. Role defaults to
// citizen and email to <role>@example.com.
func MockUser(role models.Role, email string) models.User {
	if role == "" {
		role = models.RoleCitizen
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = string(role) + "@example.com"
	}
	name := "Citizen User"
	if role == models.RoleAdmin {
		name = "Admin User"
	}
	return models.User{ID: "1", Email: email, Name: name, Role: role}
}
