package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/utils"
)

// customIdentityProvider authenticates against the users table and resolves
// application-issued session tokens.
type customIdentityProvider struct {
	userRepo    portsrepo.UserRepositoryFacade
	passwords   utils.PasswordHasher
	tokens      *sessionTokens
	revocations portsrepo.SessionRevocationStore
	now         func() time.Time
}

var _ portssvc.IdentityProvider = (*customIdentityProvider)(nil)

func (p *customIdentityProvider) Name() domain.AuthMethod {
	return domain.AuthMethodCustom
}

func (p *customIdentityProvider) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, *domain.ProviderSession, error) {
	user, err := p.userRepo.FindUserByEmail(ctx, NormalizeEmail(creds.Email))
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive() {
		return nil, nil, fmt.Errorf("%w: user is inactive", apperrors.ErrUnauthorized)
	}
	if !user.HasLocalPassword() {
		return nil, nil, fmt.Errorf("%w: user has no local password", apperrors.ErrUnauthorized)
	}
	if !p.passwords.Matches(creds.Password, user.PasswordHash) {
		return nil, nil, fmt.Errorf("%w: password mismatch", apperrors.ErrUnauthorized)
	}
	if p.passwords.NeedsRehash(user.PasswordHash) {
		p.rehash(ctx, user.UserID, creds.Password)
	}
	return &domain.Identity{User: *user, Method: domain.AuthMethodCustom}, nil, nil
}

// Resolve accepts sessions issued for custom and google logins alike.
func (p *customIdentityProvider) Resolve(ctx context.Context, tokens domain.SessionTokens) (*domain.Identity, *domain.ProviderSession, error) {
	if tokens.CustomSession == "" {
		return nil, nil, fmt.Errorf("%w: no custom session", apperrors.ErrUnauthorized)
	}
	claims, err := p.tokens.parse(tokens.CustomSession)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := p.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		return nil, nil, fmt.Errorf("%w: session revoked", apperrors.ErrUnauthorized)
	}

	user, err := p.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: session user no longer exists", apperrors.ErrUnauthorized)
		}
		return nil, nil, err
	}
	if !user.IsActive() {
		return nil, nil, fmt.Errorf("%w: user is inactive", apperrors.ErrUnauthorized)
	}

	method := domain.AuthMethod(claims.Method)
	if method != domain.AuthMethodGoogle {
		method = domain.AuthMethodCustom
	}
	return &domain.Identity{
		User:      *user,
		Method:    method,
		SessionID: claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil, nil
}

// rehash upgrades a stored hash to the configured cost. Failure only costs a later retry.
func (p *customIdentityProvider) rehash(ctx context.Context, userID, password string) {
	hash, err := p.passwords.Hash(password)
	if err == nil {
		err = p.userRepo.UpdatePasswordHash(ctx, userID, hash, p.now())
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to upgrade password hash", slog.String("user_id", userID), slog.String("error", err.Error()))
		return
	}
	slog.DebugContext(ctx, "Upgraded password hash", slog.String("user_id", userID))
}
