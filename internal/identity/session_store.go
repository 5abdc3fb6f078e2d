package identity

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const revokedSessionPrefix = "lodging:revoked-session:"

// SessionStore reports whether a login session has been revoked.
type SessionStore interface {
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// RedisSessionStore reads revoked session IDs that the identity provider
// writes as expiring Redis keys.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a new RedisSessionStore.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// IsRevoked returns true if the session has been revoked.
func (s *RedisSessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedSessionPrefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session %s: %w", sessionID, err)
	}
	return n > 0, nil
}

// Ping checks connectivity for the readiness check.
func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
