package repositories

import (
	"context"
	"time"
)

// SessionRevocationStore remembers application sessions that were logged out before expiry.
type SessionRevocationStore interface {
	// Revoke marks sessionID as revoked for ttl. A non-positive ttl is a no-op.
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error

	// IsRevoked reports whether sessionID was revoked and the mark has not yet expired.
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
