// Package memory holds in-process implementations of repository ports, used when no
// shared backing service is configured.
package memory

import (
	"context"
	"sync"
	"time"

	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
)

// RevocationStore keeps revoked session ids in memory until they expire.
type RevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewRevocationStore creates an empty store.
func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: make(map[string]time.Time), now: time.Now}
}

var _ portsrepo.SessionRevocationStore = (*RevocationStore)(nil)

func (s *RevocationStore) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 || sessionID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.revoked[sessionID] = now.Add(ttl)
	s.sweepLocked(now)
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[sessionID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, sessionID)
		return false, nil
	}
	return true, nil
}

// sweepLocked drops expired marks. Caller holds mu.
func (s *RevocationStore) sweepLocked(now time.Time) {
	for id, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, id)
		}
	}
}
