package httpctx

import (
	"context"

	"github.com/sanjkatariya/infraFix/internal/auth"
	"github.com/sanjkatariya/infraFix/internal/models"
)

// Session returns the session from context if available.
func Session(ctx context.Context) (*models.Session, bool) {
	return auth.SessionFromContext(ctx)
}

// User returns the user pointer from context if available.
func User(ctx context.Context) (*models.User, bool) {
	return auth.UserFromContext(ctx)
}

// UserID returns the authenticated user's id.
func UserID(ctx context.Context) (string, bool) {
	if u, ok := auth.UserFromContext(ctx); ok && u.ID != "" {
		return u.ID, true
	}
	return "", false
}

// Role returns the authenticated user's role.
func Role(ctx context.Context) (models.Role, bool) {
	if u, ok := auth.UserFromContext(ctx); ok && u.Role != "" {
		return u.Role, true
	}
	return "", false
}
