package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
)

// ProviderClient is the subset of the managed auth provider API the services need.
type ProviderClient interface {
	PasswordLogin(ctx context.Context, email, password string) (*domain.ProviderSession, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.ProviderSession, error)
	FetchUser(ctx context.Context, accessToken string) (*domain.ProviderUser, error)
}

// managedIdentityProvider delegates credential checks to the managed auth provider and
// links provider users to users rows by email for role and profile data.
type managedIdentityProvider struct {
	client   ProviderClient
	userRepo portsrepo.UserReader
	timeout  time.Duration
}

var _ portssvc.IdentityProvider = (*managedIdentityProvider)(nil)

func (p *managedIdentityProvider) Name() domain.AuthMethod {
	return domain.AuthMethodProvider
}

func (p *managedIdentityProvider) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, *domain.ProviderSession, error) {
	if p.client == nil {
		return nil, nil, portssvc.ErrProviderDisabled
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	session, err := p.client.PasswordLogin(ctx, NormalizeEmail(creds.Email), creds.Password)
	if err != nil {
		return nil, nil, err
	}
	identity, err := p.identityFor(ctx, session.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	return identity, session, nil
}

// Resolve checks the access token with the provider. A rejected or missing access token
// is retried once through the refresh token; the new tokens are handed back.
func (p *managedIdentityProvider) Resolve(ctx context.Context, tokens domain.SessionTokens) (*domain.Identity, *domain.ProviderSession, error) {
	if p.client == nil {
		return nil, nil, portssvc.ErrProviderDisabled
	}
	if tokens.AccessToken == "" && tokens.RefreshToken == "" {
		return nil, nil, fmt.Errorf("%w: no provider session", apperrors.ErrUnauthorized)
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if tokens.AccessToken != "" {
		identity, err := p.identityFor(ctx, tokens.AccessToken)
		if err == nil {
			return identity, nil, nil
		}
		if !errors.Is(err, apperrors.ErrUnauthorized) || tokens.RefreshToken == "" {
			return nil, nil, err
		}
	}

	refreshed, err := p.client.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		return nil, nil, err
	}
	identity, err := p.identityFor(ctx, refreshed.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	return identity, refreshed, nil
}

func (p *managedIdentityProvider) identityFor(ctx context.Context, accessToken string) (*domain.Identity, error) {
	providerUser, err := p.client.FetchUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	user, err := p.linkUser(ctx, providerUser)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{User: *user, Method: domain.AuthMethodProvider}, nil
}

// linkUser prefers the users row with the same email; provider metadata fills in otherwise.
func (p *managedIdentityProvider) linkUser(ctx context.Context, pu *domain.ProviderUser) (*domain.User, error) {
	user, err := p.userRepo.FindUserByEmail(ctx, NormalizeEmail(pu.Email))
	switch {
	case err == nil:
		if !user.IsActive() {
			return nil, fmt.Errorf("%w: user is inactive", apperrors.ErrUnauthorized)
		}
		return user, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	role := domain.UserRole(pu.Role)
	if !role.Valid() {
		role = domain.RoleUser
	}
	name := pu.Name
	if name == "" {
		name = pu.Email
	}
	return &domain.User{
		UserID: pu.ID,
		Email:  NormalizeEmail(pu.Email),
		Name:   name,
		Role:   role,
		Status: domain.StatusActive,
	}, nil
}

func (p *managedIdentityProvider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}
