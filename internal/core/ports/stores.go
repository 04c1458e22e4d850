package ports

import (
	"context"
	"time"

	"github.com/launchdesk/portal/internal/core/domain"
)

// ResetCodeStore holds pending password-reset codes, keyed by email, with a
// bounded lifetime. Issuing a new code replaces any previous one.
type ResetCodeStore interface {
	Issue(ctx context.Context, email, code string) error
	// Consume checks the code against the most recently issued one for the
	// email and invalidates it on match. Returns false on mismatch, expiry,
	// or when no code was ever issued.
	Consume(ctx context.Context, email, code string) (bool, error)
}

// SSOTokenStore maps opaque token bytes to their (identity, software, expiry)
// record. Records expire on their own; Lookup returns domain.ErrTokenNotFound
// for unknown or expired tokens.
type SSOTokenStore interface {
	Save(ctx context.Context, token *domain.SSOToken) error
	Lookup(ctx context.Context, token string) (*domain.SSOToken, error)
}

// TokenRevoker records logged-out session tokens until their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// ResetNotifier delivers a reset code out of band. The production
// implementation is a mail/SMS gateway; tests and development use a logger.
type ResetNotifier interface {
	SendResetCode(ctx context.Context, email, code string) error
}

// ChangeFeed exposes row-level change notifications for a collection.
// Subscribe invokes fn on every insert/update/delete until the returned
// unsubscribe function is called.
type ChangeFeed interface {
	Subscribe(ctx context.Context, collection string, fn func()) (func(), error)
}
