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
	"google.golang.org/api/idtoken"
)

// ErrInvalidCredentials is the single answer to a failed login.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)

// sessionService resolves identities through a ranked list of providers.
type sessionService struct {
	BaseService
	providers   []portssvc.IdentityProvider
	google      *googleIdentityProvider
	tokens      *sessionTokens
	revocations portsrepo.SessionRevocationStore
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

// SessionServiceDeps groups what NewSessionService needs.
type SessionServiceDeps struct {
	UserRepo    portsrepo.UserRepositoryFacade
	Revocations portsrepo.SessionRevocationStore
	Tokens      SessionTokenConfig
	Passwords   utils.PasswordHasher
	// Provider is nil when the managed auth provider is not configured.
	Provider        ProviderClient
	ProviderTimeout time.Duration
	GoogleClientID  string
	// GoogleValidator defaults to idtoken.Validate.
	GoogleValidator IDTokenValidator
}

// NewSessionService wires the managed provider first and the custom users table second.
func NewSessionService(deps SessionServiceDeps) portssvc.SessionSvcFacade {
	tokens := newSessionTokens(deps.Tokens)
	validator := deps.GoogleValidator
	if validator == nil {
		validator = defaultGoogleValidator
	}
	return &sessionService{
		providers: []portssvc.IdentityProvider{
			&managedIdentityProvider{client: deps.Provider, userRepo: deps.UserRepo, timeout: deps.ProviderTimeout},
			&customIdentityProvider{userRepo: deps.UserRepo, passwords: deps.Passwords, tokens: tokens, revocations: deps.Revocations, now: time.Now},
		},
		google: &googleIdentityProvider{
			clientID: deps.GoogleClientID,
			validate: validator,
			userRepo: deps.UserRepo,
			now:      time.Now,
		},
		tokens:      tokens,
		revocations: deps.Revocations,
	}
}

func (s *sessionService) Login(ctx context.Context, creds domain.Credentials) (*portssvc.LoginResult, error) {
	creds.Email = NormalizeEmail(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	for _, provider := range s.providers {
		identity, providerSession, err := provider.Authenticate(ctx, creds)
		if err != nil {
			if !errors.Is(err, portssvc.ErrProviderDisabled) {
				s.LogDebug(ctx, "Identity provider rejected login",
					slog.String("provider", string(provider.Name())),
					slog.String("error", err.Error()))
			}
			continue
		}
		return s.loginResult(ctx, identity, providerSession)
	}

	s.LogWarn(ctx, "Login failed", slog.String("email", creds.Email))
	return nil, ErrInvalidCredentials
}

func (s *sessionService) LoginWithGoogle(ctx context.Context, idToken string) (*portssvc.LoginResult, error) {
	identity, err := s.google.authenticate(ctx, idToken)
	if err != nil {
		if errors.Is(err, portssvc.ErrProviderDisabled) {
			return nil, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrUnavailable)
		}
		s.LogWarn(ctx, "Google login failed", slog.String("error", err.Error()))
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("google login failed: %w", err)
	}
	return s.loginResult(ctx, identity, nil)
}

// loginResult hands back provider tokens as-is, or signs an application session.
func (s *sessionService) loginResult(ctx context.Context, identity *domain.Identity, providerSession *domain.ProviderSession) (*portssvc.LoginResult, error) {
	if providerSession != nil {
		s.LogInfo(ctx, "User logged in", slog.String("user_id", identity.User.UserID), slog.String("auth_method", string(identity.Method)))
		return &portssvc.LoginResult{Identity: *identity, ProviderSession: providerSession}, nil
	}

	token, err := s.tokens.issue(identity)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue session", slog.String("user_id", identity.User.UserID))
		return nil, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", identity.User.UserID), slog.String("auth_method", string(identity.Method)))
	return &portssvc.LoginResult{Identity: *identity, CustomSession: token}, nil
}

func (s *sessionService) Resolve(ctx context.Context, tokens domain.SessionTokens) portssvc.Resolution {
	if tokens.IsEmpty() {
		return portssvc.Resolution{}
	}
	for _, provider := range s.providers {
		identity, refreshed, err := provider.Resolve(ctx, tokens)
		if err != nil {
			if !errors.Is(err, portssvc.ErrProviderDisabled) {
				s.LogDebug(ctx, "Identity provider could not resolve session",
					slog.String("provider", string(provider.Name())),
					slog.String("error", err.Error()))
			}
			continue
		}
		return portssvc.Resolution{Authenticated: true, Identity: identity, Refreshed: refreshed}
	}
	return portssvc.Resolution{}
}

func (s *sessionService) Logout(ctx context.Context, tokens domain.SessionTokens) error {
	if tokens.CustomSession == "" {
		return nil
	}
	claims, err := s.tokens.parse(tokens.CustomSession)
	if err != nil {
		// Nothing valid to revoke; clearing the cookie is enough.
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		s.LogError(ctx, err, "Failed to revoke session", slog.String("user_id", claims.Subject))
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.LogInfo(ctx, "User logged out", slog.String("user_id", claims.Subject))
	return nil
}

func defaultGoogleValidator(ctx context.Context, idToken, audience string) (*idtoken.Payload, error) {
	return idtoken.Validate(ctx, idToken, audience)
}
