package ports

import (
	"context"

	"github.com/launchdesk/portal/internal/core/domain"
)

// ProfileUpdate carries a partial profile mutation. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Username        *string
	ProfilePicture  *string
	AllowedSoftware *[]string
}

// ProfileRepository defines persistence for application-level user records.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Update(ctx context.Context, id string, update ProfileUpdate) (*domain.Profile, error)
	Delete(ctx context.Context, id string) error
}
