package ports

import (
	"context"

	"github.com/launchdesk/portal/internal/core/domain"
)

// SubmitWorkInput carries a work submission from an authenticated user.
type SubmitWorkInput struct {
	UserID         string
	Software       string
	Content        string
	IdempotencyKey string
}

// SubmitWorkResult is returned by SaveWorkData.
type SubmitWorkResult struct {
	Item *domain.WorkItem
	// AlreadyExisted is true when the Idempotency-Key matched an existing item.
	AlreadyExisted bool
}

// WorkService implements the work item ledger: submission and review.
type WorkService interface {
	// SaveWorkData creates a pending work item. Fails with
	// domain.ErrForbidden when the software is not in the submitter's
	// entitlement set.
	SaveWorkData(ctx context.Context, input SubmitWorkInput) (*SubmitWorkResult, error)
	List(ctx context.Context, filter WorkItemFilter) ([]*domain.WorkItem, error)
	// Accept and Reject transition a pending item to its terminal state.
	// Invoking either on an already-resolved item fails with
	// domain.ErrInvalidTransition and leaves the status unchanged.
	Accept(ctx context.Context, id string) (*domain.WorkItem, error)
	Reject(ctx context.Context, id string) (*domain.WorkItem, error)
}
