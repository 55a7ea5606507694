// internal/auth/session.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sanjkatariya/infraFix/internal/models"
)

type ctxKeyUser struct{}
type ctxKeySession struct{}

// BearerToken returns the token from "Authorization: Bearer <token>". A
// header without the scheme is taken as the raw token.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(tok)
	}
	return h
}

// HasAuthorization reports whether the request carries any Authorization header.
func HasAuthorization(r *http.Request) bool {
	return strings.TrimSpace(r.Header.Get("Authorization")) != ""
}

func WithSession(ctx context.Context, s *models.Session) context.Context {
	ctx = context.WithValue(ctx, ctxKeySession{}, s)
	return WithUser(ctx, &s.User)
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(ctxKeySession{}).(*models.Session)
	return s, ok && s != nil
}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser{}, u)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKeyUser{}).(*models.User)
	return u, ok && u != nil
}
