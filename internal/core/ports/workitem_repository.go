package ports

import (
	"context"

	"github.com/launchdesk/portal/internal/core/domain"
)

// WorkItemFilter carries query parameters for listing work items.
type WorkItemFilter struct {
	UserID string            // empty = all users
	Status domain.WorkStatus // empty = all statuses
}

// WorkItemRepository defines persistence for the work item ledger.
type WorkItemRepository interface {
	Create(ctx context.Context, item *domain.WorkItem) error
	FindByID(ctx context.Context, id string) (*domain.WorkItem, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.WorkItem, error)
	List(ctx context.Context, filter WorkItemFilter) ([]*domain.WorkItem, error)
	// UpdateStatus transitions the item from "from" to "to" atomically.
	// It returns domain.ErrInvalidTransition when the item is no longer in
	// the "from" state, and domain.ErrWorkItemNotFound when it does not exist.
	UpdateStatus(ctx context.Context, id string, from, to domain.WorkStatus) (*domain.WorkItem, error)
	// DeleteByUserID removes every work item owned by the given user.
	// Part of the profile deletion cascade.
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}
