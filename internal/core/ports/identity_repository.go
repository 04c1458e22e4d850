package ports

import (
	"context"

	"github.com/launchdesk/portal/internal/core/domain"
)

// IdentityRepository defines persistence for authentication-level accounts.
// Email uniqueness is enforced by the store; Create returns
// domain.ErrUserExists on a duplicate.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	// FindByIdempotencyKey resolves the identity created under a signup
	// idempotency key. Returns domain.ErrUserNotFound when no signup with
	// that key has succeeded.
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Identity, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// Delete removes the identity. Used as the compensation path when
	// profile creation fails after the identity was created.
	Delete(ctx context.Context, id string) error
}
