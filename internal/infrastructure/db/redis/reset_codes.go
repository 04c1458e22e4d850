package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetCodeStore holds password reset codes with a bounded lifetime.
// Key format: reset:<email>
type ResetCodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResetCodeStore creates a store whose codes expire after ttl.
func NewResetCodeStore(client *redis.Client, ttl time.Duration) *ResetCodeStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ResetCodeStore{client: client, ttl: ttl}
}

// Issue stores the code for the email, replacing any previous one.
func (s *ResetCodeStore) Issue(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, s.key(email), code, s.ttl).Err()
}

// Consume compares the presented code against the stored one and deletes it
// on match. A mismatch leaves the stored code in place so a typo does not
// void a legitimate code. Expired or never-issued codes fail the comparison.
func (s *ResetCodeStore) Consume(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, s.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume reset code: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return false, fmt.Errorf("consume reset code: %w", err)
	}
	return true, nil
}

func (s *ResetCodeStore) key(email string) string {
	return "reset:" + email
}
