// internal/common/auth/identity.go
package auth

import (
	"context"

	"jobboard-api/internal/models"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID string
	Email  string
	Role   models.Role
	Token  string
}

// Is reports whether the identity holds role. Safe on nil.
func (i *Identity) Is(role models.Role) bool {
	return i != nil && i.Role == role
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the caller, or nil for anonymous requests.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
