package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RevocationStoreTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *goredis.Client
	store  *RevocationStore
}

func (s *RevocationStoreTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	client, err := NewClient(context.Background(), "redis://"+s.mr.Addr())
	s.Require().NoError(err)
	s.client = client
	s.store = NewRevocationStore(client)
}

func (s *RevocationStoreTestSuite) TearDownTest() {
	_ = s.client.Close()
}

func (s *RevocationStoreTestSuite) TestRevokeAndExpire() {
	ctx := context.Background()

	revoked, err := s.store.IsRevoked(ctx, "sess-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.store.Revoke(ctx, "sess-1", time.Minute))
	revoked, err = s.store.IsRevoked(ctx, "sess-1")
	s.Require().NoError(err)
	s.True(revoked)
	s.Equal(time.Minute, s.mr.TTL(revocationKeyPrefix+"sess-1"))

	s.mr.FastForward(time.Minute)
	revoked, err = s.store.IsRevoked(ctx, "sess-1")
	s.Require().NoError(err)
	s.False(revoked)
}

func (s *RevocationStoreTestSuite) TestNonPositiveTTLIsNoop() {
	ctx := context.Background()
	s.Require().NoError(s.store.Revoke(ctx, "sess-2", -time.Second))
	s.False(s.mr.Exists(revocationKeyPrefix + "sess-2"))
}

func (s *RevocationStoreTestSuite) TestRedisDown() {
	s.mr.Close()
	_, err := s.store.IsRevoked(context.Background(), "sess-3")
	s.Error(err)
}

func TestRevocationStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RevocationStoreTestSuite))
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(context.Background(), "not a url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis URL")
}
