// Package redis implements repository ports on top of redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "fm:session:revoked:"

// RevocationStore keeps revoked session ids as expiring redis keys, so every instance
// of the API sees a logout.
type RevocationStore struct {
	client *goredis.Client
}

// NewRevocationStore creates a store on client.
func NewRevocationStore(client *goredis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

var _ portsrepo.SessionRevocationStore = (*RevocationStore)(nil)

func (s *RevocationStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 || sessionID == "" {
		return nil
	}
	if err := s.client.Set(ctx, revocationKeyPrefix+sessionID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	err := s.client.Get(ctx, revocationKeyPrefix+sessionID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, goredis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
}

// NewClient parses url (redis://...) and pings the server.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
