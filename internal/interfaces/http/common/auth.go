package common

import (
	"context"

	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

type contextKey string

const authUserContextKey contextKey = "authUser"

// AuthenticatedUser represents the JWT-derived principal.
type AuthenticatedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
}

// Actor converts the principal into the domain actor used for authorship and edit checks.
func (u AuthenticatedUser) Actor() domain.Actor {
	name := u.Name
	if name == "" {
		name = u.Username
	}
	return domain.Actor{ID: u.ID, Name: name}
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok
}
