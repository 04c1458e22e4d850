package ports

import (
	"context"

	"github.com/launchdesk/portal/internal/core/domain"
)

// SignupInput carries all data needed to create a new account.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     string
	// IdempotencyKey, when non-empty, makes the signup replayable: a retry
	// carrying the same key returns the originally created account instead
	// of a duplicate-email conflict.
	IdempotencyKey string
}

// SessionService implements the identity/session operations: who is logged
// in, and every mutation that changes that state.
type SessionService interface {
	// Login resolves credentials to a session token and profile. Bad email
	// and bad password collapse into a single domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.Profile, error)
	// Signup creates the identity then the profile; when the profile insert
	// fails the identity is deleted again (best-effort compensation) and the
	// original error is returned. On success a session token is issued.
	Signup(ctx context.Context, input SignupInput) (string, *domain.Profile, error)
	// Logout revokes the session token. Idempotent.
	Logout(ctx context.Context, token string) error
	CurrentProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.Profile, error)
	// ChangePassword verifies oldPassword against the stored hash before
	// applying newPassword.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	// ForgotPassword triggers the out-of-band reset flow. The response never
	// reveals whether the email has an account.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}
