package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/launchdesk/portal/internal/core/domain"
)

// SSOTokenStore maps opaque token bytes to their scope record. Redis TTL
// handles expiry; identity and scope never appear in the token itself.
// Key format: sso:<token>
type SSOTokenStore struct {
	client *redis.Client
}

func NewSSOTokenStore(client *redis.Client) *SSOTokenStore {
	return &SSOTokenStore{client: client}
}

func (s *SSOTokenStore) Save(ctx context.Context, token *domain.SSOToken) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode sso token: %w", err)
	}
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("sso token already expired")
	}
	return s.client.Set(ctx, s.key(token.Token), payload, ttl).Err()
}

func (s *SSOTokenStore) Lookup(ctx context.Context, token string) (*domain.SSOToken, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup sso token: %w", err)
	}

	var record domain.SSOToken
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("decode sso token: %w", err)
	}
	return &record, nil
}

func (s *SSOTokenStore) key(token string) string {
	return "sso:" + token
}
