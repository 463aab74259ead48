package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevocationStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewRevocationStore()
	store.now = func() time.Time { return now }

	revoked, err := store.IsRevoked(ctx, "s-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "s-1", time.Hour))
	require.NoError(t, store.Revoke(ctx, "s-2", 0))

	revoked, _ = store.IsRevoked(ctx, "s-1")
	assert.True(t, revoked)
	revoked, _ = store.IsRevoked(ctx, "s-2")
	assert.False(t, revoked, "non-positive ttl is a no-op")

	now = now.Add(time.Hour)
	revoked, _ = store.IsRevoked(ctx, "s-1")
	assert.False(t, revoked, "marks expire with the session")
}
