package ports

import (
	"context"

	"github.com/launchdesk/portal/internal/core/domain"
)

// CreateUserInput carries an admin-created account. Unlike the public signup
// path, the role is selectable here.
type CreateUserInput struct {
	Username        string
	Email           string
	Password        string
	Role            string
	AllowedSoftware []string
}

// AdminOverview is the derived read-mostly projection over the user
// directory and the work item ledger.
type AdminOverview struct {
	Users     []*domain.Profile  `json:"users"`
	WorkItems []*domain.WorkItem `json:"workItems"`
	Pending   int                `json:"pending"`
	Accepted  int                `json:"accepted"`
	Rejected  int                `json:"rejected"`
}

// AdminService implements account management and the admin dashboard view.
type AdminService interface {
	Overview(ctx context.Context) (*AdminOverview, error)
	ListUsers(ctx context.Context) ([]*domain.Profile, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.Profile, error)
	UpdateUser(ctx context.Context, id string, update ProfileUpdate) (*domain.Profile, error)
	UpdateAllowedSoftware(ctx context.Context, id string, software []string) (*domain.Profile, error)
	// DeleteUser removes the identity, the profile, and every work item the
	// user owns, as one logical operation.
	DeleteUser(ctx context.Context, id string) error
}
