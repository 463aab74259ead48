package services

import (
	"fmt"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/utils"
	"github.com/google/uuid"
)

// SessionTokenConfig configures application-issued session tokens.
type SessionTokenConfig struct {
	Secret string
	Issuer string
	MaxAge time.Duration
}

// sessionTokens issues and verifies the signed custom-session cookie value.
type sessionTokens struct {
	cfg SessionTokenConfig
	now func() time.Time
}

func newSessionTokens(cfg SessionTokenConfig) *sessionTokens {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 7 * 24 * time.Hour
	}
	return &sessionTokens{cfg: cfg, now: time.Now}
}

// issue signs a new session for user and fills in the identity's session fields.
func (t *sessionTokens) issue(identity *domain.Identity) (string, error) {
	sessionID := uuid.NewString()
	expiresAt := t.now().Add(t.cfg.MaxAge)
	token, err := utils.GenerateSessionJWT(identity.User.UserID, sessionID, string(identity.Method), t.cfg.Secret, t.cfg.Issuer, expiresAt)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	identity.SessionID = sessionID
	identity.ExpiresAt = expiresAt
	return token, nil
}

// parse verifies signature, issuer and expiry.
func (t *sessionTokens) parse(token string) (*utils.SessionClaims, error) {
	claims, err := utils.ParseSessionJWT(token, t.cfg.Secret, t.cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session token: %v", apperrors.ErrUnauthorized, err)
	}
	return claims, nil
}
