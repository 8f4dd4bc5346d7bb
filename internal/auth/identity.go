// Package auth resolves who is calling: password hashing, bearer tokens and
// the request Identity passed into every core operation.
package auth

import (
	"context"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// Identity is the authenticated caller of an operation.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   domain.Role
	Status domain.UserStatus
}

func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// CanSee reports whether the caller may read a record owned by ownerID.
func (i Identity) CanSee(ownerID string) bool {
	return i.IsAdmin() || i.UserID == ownerID
}

// IdentityOf builds the Identity of a stored user.
func IdentityOf(u *domain.User) Identity {
	return Identity{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
	}
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the Identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
