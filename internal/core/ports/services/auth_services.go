package services

import (
	"context"
	"errors"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
)

// ErrProviderDisabled is returned by an identity provider that is not configured.
// The session service skips such providers silently.
var ErrProviderDisabled = errors.New("identity provider disabled")

// IdentityProvider is one source of identities. Providers are tried in rank order.
type IdentityProvider interface {
	// Name identifies the provider in logs.
	Name() domain.AuthMethod

	// Authenticate checks an email/password pair. On success the returned ProviderSession
	// is non-nil only for providers that issue their own tokens.
	Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, *domain.ProviderSession, error)

	// Resolve maps presented session cookies to an identity. A non-nil ProviderSession
	// means the provider refreshed its tokens and the cookies must be rewritten.
	Resolve(ctx context.Context, tokens domain.SessionTokens) (*domain.Identity, *domain.ProviderSession, error)
}

// LoginResult is what a successful login hands back to the transport layer.
// Exactly one of ProviderSession and CustomSession is set.
type LoginResult struct {
	Identity        domain.Identity
	ProviderSession *domain.ProviderSession
	CustomSession   string
}

// Resolution is the outcome of resolving a request's session cookies.
type Resolution struct {
	Authenticated bool
	Identity      *domain.Identity
	// Refreshed carries new provider tokens when the access token had to be refreshed.
	Refreshed *domain.ProviderSession
}

// SessionSvcFacade establishes, resolves and ends sessions.
type SessionSvcFacade interface {
	// Login tries every provider in rank order. Any failure is reported as apperrors.ErrUnauthorized.
	Login(ctx context.Context, creds domain.Credentials) (*LoginResult, error)

	// LoginWithGoogle verifies a Google ID token and issues an application session.
	LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error)

	// Resolve never fails: lookup errors yield an unauthenticated Resolution.
	Resolve(ctx context.Context, tokens domain.SessionTokens) Resolution

	// Logout revokes the application session, if any, until it would have expired.
	Logout(ctx context.Context, tokens domain.SessionTokens) error
}
