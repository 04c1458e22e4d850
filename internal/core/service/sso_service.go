package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/launchdesk/portal/internal/api/metrics"
	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

const ssoTokenBytes = 32

// SSOService issues opaque launch tokens and resolves them for external
// tools. Token bytes come from a CSPRNG; identity and scope live only in the
// server-side lookup record.
type SSOService struct {
	profiles ports.ProfileRepository
	tokens   ports.SSOTokenStore
	ttl      time.Duration
	log      zerolog.Logger
}

func NewSSOService(profiles ports.ProfileRepository, tokens ports.SSOTokenStore, ttl time.Duration, log zerolog.Logger) *SSOService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SSOService{profiles: profiles, tokens: tokens, ttl: ttl, log: log}
}

func (s *SSOService) Generate(ctx context.Context, userID, software string) (*domain.SSOToken, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.HasSoftware(software) {
		return nil, domain.ErrForbidden
	}

	raw := make([]byte, ssoTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("sso token: %w", err)
	}

	now := time.Now().UTC()
	token := &domain.SSOToken{
		Token:     hex.EncodeToString(raw),
		UserID:    userID,
		Software:  software,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, err
	}

	metrics.SSOTokensIssuedTotal.WithLabelValues(software).Inc()
	s.log.Info().Str("user_id", userID).Str("software", software).Msg("sso token issued")
	return token, nil
}

func (s *SSOService) Validate(ctx context.Context, token string) (*domain.SSOToken, error) {
	if token == "" {
		return nil, domain.ErrTokenNotFound
	}
	record, err := s.tokens.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	// The store expires records on its own; this guards a lookup racing the TTL.
	if time.Now().UTC().After(record.ExpiresAt) {
		return nil, domain.ErrTokenNotFound
	}
	return record, nil
}
