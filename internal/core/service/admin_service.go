package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

// OverviewSource is the projection the admin dashboard reads from. Satisfied
// by adminview.View; kept as an interface so tests can stub it.
type OverviewSource interface {
	Snapshot() ports.AdminOverview
}

// AdminService implements account management and the admin dashboard.
type AdminService struct {
	identities ports.IdentityRepository
	profiles   ports.ProfileRepository
	items      ports.WorkItemRepository
	overview   OverviewSource
	log        zerolog.Logger
}

func NewAdminService(
	identities ports.IdentityRepository,
	profiles ports.ProfileRepository,
	items ports.WorkItemRepository,
	overview OverviewSource,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		identities: identities,
		profiles:   profiles,
		items:      items,
		overview:   overview,
		log:        log,
	}
}

func (s *AdminService) Overview(ctx context.Context) (*ports.AdminOverview, error) {
	snap := s.overview.Snapshot()
	return &snap, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

// CreateUser is the operator path: unlike public signup, the role is
// selectable and the entitlement set may be supplied up front.
func (s *AdminService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.Profile, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.identities.Create(ctx, identity)
	if err != nil {
		return nil, err
	}

	allowed := input.AllowedSoftware
	if allowed == nil {
		allowed = []string{}
	}
	profile := &domain.Profile{
		ID:              created.ID,
		Username:        input.Username,
		Email:           created.Email,
		Role:            input.Role,
		AllowedSoftware: allowed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if delErr := s.identities.Delete(ctx, created.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("identity_id", created.ID).Msg("user creation compensation failed, identity orphaned")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", profile.ID).Str("role", profile.Role).Msg("user created by admin")
	return profile, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id string, update ports.ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.profiles.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("user updated by admin")
	return profile, nil
}

func (s *AdminService) UpdateAllowedSoftware(ctx context.Context, id string, software []string) (*domain.Profile, error) {
	if software == nil {
		software = []string{}
	}
	software = dedupeSoftware(software)
	return s.profiles.Update(ctx, id, ports.ProfileUpdate{AllowedSoftware: &software})
}

// DeleteUser removes the identity, the profile, and cascades over the user's
// work items so the ledger holds no orphans.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.profiles.FindByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.items.DeleteByUserID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.profiles.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.identities.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Int64("work_items_deleted", deleted).Msg("user deleted")
	return nil
}

// dedupeSoftware drops repeated tokens; the entitlement list is a set.
func dedupeSoftware(software []string) []string {
	seen := make(map[string]struct{}, len(software))
	out := make([]string, 0, len(software))
	for _, sw := range software {
		if _, ok := seen[sw]; ok {
			continue
		}
		seen[sw] = struct{}{}
		out = append(out, sw)
	}
	return out
}
