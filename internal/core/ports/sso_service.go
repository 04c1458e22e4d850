package ports

import (
	"context"

	"github.com/launchdesk/portal/internal/core/domain"
)

// SSOService issues and resolves opaque launch tokens.
type SSOService interface {
	// Generate issues a bearer token scoped to (user, software, issuance
	// time). Fails with domain.ErrForbidden when the software is not in the
	// caller's entitlement set.
	Generate(ctx context.Context, userID, software string) (*domain.SSOToken, error)
	// Validate resolves a token presented by a launched tool. Unknown and
	// expired tokens fail with domain.ErrTokenNotFound.
	Validate(ctx context.Context, token string) (*domain.SSOToken, error)
}
