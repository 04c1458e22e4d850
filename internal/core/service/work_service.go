package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/launchdesk/portal/internal/api/metrics"
	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

// WorkProjection receives just-written work items so a derived read model
// can fold them in ahead of the change feed catching up. Satisfied by
// adminview.View.
type WorkProjection interface {
	ApplyLocal(item *domain.WorkItem)
}

// WorkService implements work submission and the admin review state machine.
type WorkService struct {
	items      ports.WorkItemRepository
	profiles   ports.ProfileRepository
	projection WorkProjection
	log        zerolog.Logger
}

// NewWorkService wires the ledger and directory stores. projection may be
// nil when no derived view needs eager updates.
func NewWorkService(items ports.WorkItemRepository, profiles ports.ProfileRepository, projection WorkProjection, log zerolog.Logger) *WorkService {
	return &WorkService{items: items, profiles: profiles, projection: projection, log: log}
}

// SaveWorkData creates a pending work item for software the submitter is
// entitled to. If an idempotency key is provided and already seen, the
// previously created item is returned without side effects.
func (s *WorkService) SaveWorkData(ctx context.Context, input ports.SubmitWorkInput) (*ports.SubmitWorkResult, error) {
	if input.UserID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	profile, err := s.profiles.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !profile.HasSoftware(input.Software) {
		s.log.Warn().Str("user_id", input.UserID).Str("software", input.Software).Msg("submission for unentitled software rejected")
		return nil, domain.ErrForbidden
	}

	if input.IdempotencyKey != "" {
		existing, err := s.items.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.log.Info().Str("idempotency_key", input.IdempotencyKey).Str("work_item_id", existing.ID).Msg("idempotent replay")
			return &ports.SubmitWorkResult{Item: existing, AlreadyExisted: true}, nil
		}
	}

	now := time.Now().UTC()
	item := &domain.WorkItem{
		ID:             uuid.NewString(),
		UserID:         input.UserID,
		Software:       input.Software,
		Content:        input.Content,
		Status:         domain.StatusPending,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.items.Create(ctx, item); err != nil {
		// Lost the idempotency-key race to a concurrent submit: return the
		// winner's item instead of a second row.
		if input.IdempotencyKey != "" && errors.Is(err, domain.ErrWorkItemExists) {
			existing, findErr := s.items.FindByIdempotencyKey(ctx, input.IdempotencyKey)
			if findErr == nil && existing != nil {
				return &ports.SubmitWorkResult{Item: existing, AlreadyExisted: true}, nil
			}
		}
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create work item")
		return nil, err
	}

	metrics.WorkItemsCreatedTotal.WithLabelValues(item.Software).Inc()
	s.applyLocal(item)
	s.log.Info().Str("work_item_id", item.ID).Str("user_id", item.UserID).Str("software", item.Software).Msg("work item submitted")
	return &ports.SubmitWorkResult{Item: item}, nil
}

// applyLocal pushes the written item into the derived view so the admin
// snapshot reflects it before the change feed does.
func (s *WorkService) applyLocal(item *domain.WorkItem) {
	if s.projection != nil {
		s.projection.ApplyLocal(item)
	}
}

func (s *WorkService) List(ctx context.Context, filter ports.WorkItemFilter) ([]*domain.WorkItem, error) {
	return s.items.List(ctx, filter)
}

func (s *WorkService) Accept(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.resolve(ctx, id, domain.StatusAccepted)
}

func (s *WorkService) Reject(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.resolve(ctx, id, domain.StatusRejected)
}

// resolve moves a pending item to a terminal state. The repository performs
// the pending-state check atomically so a concurrent double review cannot
// overwrite an already-terminal status.
func (s *WorkService) resolve(ctx context.Context, id string, to domain.WorkStatus) (*domain.WorkItem, error) {
	if !domain.StatusPending.CanTransitionTo(to) {
		return nil, domain.ErrInvalidTransition
	}

	item, err := s.items.UpdateStatus(ctx, id, domain.StatusPending, to)
	if err != nil {
		return nil, err
	}

	metrics.WorkReviewsTotal.WithLabelValues(string(to)).Inc()
	s.applyLocal(item)
	s.log.Info().Str("work_item_id", id).Str("decision", string(to)).Msg("work item reviewed")
	return item, nil
}
