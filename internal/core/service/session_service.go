package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/launchdesk/portal/internal/api/metrics"
	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

// SessionService implements login, signup, logout and the profile/password
// mutations that hang off the current session.
type SessionService struct {
	identities ports.IdentityRepository
	profiles   ports.ProfileRepository
	resetCodes ports.ResetCodeStore
	notifier   ports.ResetNotifier
	revoker    ports.TokenRevoker
	jwtSecret  string
	tokenTTL   time.Duration
	log        zerolog.Logger
}

func NewSessionService(
	identities ports.IdentityRepository,
	profiles ports.ProfileRepository,
	resetCodes ports.ResetCodeStore,
	notifier ports.ResetNotifier,
	revoker ports.TokenRevoker,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{
		identities: identities,
		profiles:   profiles,
		resetCodes: resetCodes,
		notifier:   notifier,
		revoker:    revoker,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		log:        log,
	}
}

func (s *SessionService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		// The store distinguishes "no such email"; the caller must not.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	profile, err := s.loadProfile(ctx, identity)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(profile)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.Inc()
	s.log.Info().Str("user_id", profile.ID).Str("role", profile.Role).Msg("login")
	return token, profile, nil
}

func (s *SessionService) Signup(ctx context.Context, input ports.SignupInput) (string, *domain.Profile, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return "", nil, domain.ErrInvalidCredentials
	}

	// A retry carrying an already-seen key replays the original signup's
	// outcome instead of hitting the duplicate-email conflict.
	if input.IdempotencyKey != "" {
		existing, err := s.identities.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.log.Info().Str("idempotency_key", input.IdempotencyKey).Str("user_id", existing.ID).Msg("idempotent signup replay")
			return s.replaySignup(ctx, existing)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		ID:             uuid.NewString(),
		Email:          input.Email,
		PasswordHash:   string(hash),
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Two-step creation: the email-unique insert is the race arbiter for
	// concurrent signups, then the profile rides on the winner's id.
	created, err := s.identities.Create(ctx, identity)
	if err != nil {
		// Lost the race to a concurrent retry with the same key: hand back
		// the winner's account.
		if input.IdempotencyKey != "" && errors.Is(err, domain.ErrUserExists) {
			existing, findErr := s.identities.FindByIdempotencyKey(ctx, input.IdempotencyKey)
			if findErr == nil && existing != nil {
				return s.replaySignup(ctx, existing)
			}
		}
		return "", nil, err
	}

	allowed := []string{}
	if input.Role == domain.RoleUser {
		allowed = append(allowed, domain.DefaultAllowedSoftware...)
	}
	profile := &domain.Profile{
		ID:              created.ID,
		Username:        input.Username,
		Email:           created.Email,
		Role:            input.Role,
		ProfilePicture:  "",
		AllowedSoftware: allowed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		// Compensation: no transaction spans the two stores, so roll the
		// identity back and surface the original failure.
		if delErr := s.identities.Delete(ctx, created.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("identity_id", created.ID).Msg("signup compensation failed, identity orphaned")
		}
		return "", nil, err
	}

	token, err := s.generateToken(profile)
	if err != nil {
		return "", nil, err
	}

	metrics.SignupsTotal.Inc()
	s.log.Info().Str("user_id", profile.ID).Str("role", profile.Role).Msg("signup")
	return token, profile, nil
}

// Logout revokes the token until its natural expiry. Revoking an already
// revoked or expired token is a no-op.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		// Invalid or expired tokens need no denylist entry.
		return nil
	}

	ttl := s.tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, token, ttl)
}

func (s *SessionService) CurrentProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.attachEmail(ctx, profile)
	return profile, nil
}

func (s *SessionService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	// Entitlements are not self-service; only the admin path may touch them.
	update.AllowedSoftware = nil

	profile, err := s.profiles.Update(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	s.attachEmail(ctx, profile)
	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return profile, nil
}

func (s *SessionService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	identity, err := s.identities.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.identities.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// resetSink absorbs the store and delivery work for unknown emails so both
// outcomes of ForgotPassword share a latency profile. The .invalid TLD never
// resolves, so nothing is actually delivered.
const resetSink = "sink@portal.invalid"

// ForgotPassword runs the same work for known and unknown emails and always
// succeeds, so neither the response nor its timing can be used to probe for
// accounts. Codes issued to the sink are unusable: ResetPassword re-checks
// account existence after consuming a code.
func (s *SessionService) ForgotPassword(ctx context.Context, email string) error {
	code := uuid.NewString()

	target := resetSink
	identity, err := s.identities.FindByEmail(ctx, email)
	known := err == nil
	if known {
		target = identity.Email
	}

	if err := s.resetCodes.Issue(ctx, target, code); err != nil {
		s.log.Error().Err(err).Msg("failed to store reset code")
		return nil
	}
	if err := s.notifier.SendResetCode(ctx, target, code); err != nil {
		s.log.Error().Err(err).Msg("failed to deliver reset code")
	}
	if known {
		metrics.PasswordResetsIssuedTotal.Inc()
	}
	return nil
}

func (s *SessionService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidResetCode
	}

	ok, err := s.resetCodes.Consume(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidResetCode
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidResetCode
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.identities.UpdatePassword(ctx, identity.ID, string(hash)); err != nil {
		return err
	}
	s.log.Info().Str("user_id", identity.ID).Msg("password reset")
	return nil
}

// replaySignup re-issues a session for the account a previous signup with
// the same idempotency key created.
func (s *SessionService) replaySignup(ctx context.Context, identity *domain.Identity) (string, *domain.Profile, error) {
	profile, err := s.loadProfile(ctx, identity)
	if err != nil {
		return "", nil, err
	}
	token, err := s.generateToken(profile)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

func (s *SessionService) loadProfile(ctx context.Context, identity *domain.Identity) (*domain.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	profile.Email = identity.Email
	return profile, nil
}

// attachEmail fills the profile's email from the identity record; the
// directory itself stores no credentials.
func (s *SessionService) attachEmail(ctx context.Context, profile *domain.Profile) {
	identity, err := s.identities.FindByID(ctx, profile.ID)
	if err == nil {
		profile.Email = identity.Email
	}
}

func (s *SessionService) generateToken(profile *domain.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":      profile.ID,
		"username": profile.Username,
		"role":     profile.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
