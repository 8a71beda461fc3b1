package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

// OwnerPolicy lets only the store's author edit it.
type OwnerPolicy struct{}

func (OwnerPolicy) AuthorizeEdit(_ context.Context, actor domain.Actor, store *domain.Store) error {
	if actor.ID == "" || store == nil || store.Author != actor.ID {
		return domain.ErrForbidden
	}
	return nil
}

// AuthenticatedPolicy lets any authenticated actor edit any store.
type AuthenticatedPolicy struct{}

func (AuthenticatedPolicy) AuthorizeEdit(_ context.Context, actor domain.Actor, _ *domain.Store) error {
	if actor.ID == "" {
		return domain.ErrForbidden
	}
	return nil
}

// NewEditPolicy resolves a policy by name: "owner" (default) or "any".
func NewEditPolicy(name string) (EditPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "owner":
		return OwnerPolicy{}, nil
	case "any":
		return AuthenticatedPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown edit policy %q", name)
	}
}
