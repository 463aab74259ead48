// Package authprovider talks to the managed auth provider: an OAuth2 token endpoint
// supporting the password and refresh_token grants, plus a bearer-authenticated
// endpoint returning the current user.
package authprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

// Config configures a Client.
type Config struct {
	TokenURL     string
	UserURL      string
	ClientID     string
	ClientSecret string
	// APIKey is sent as the apikey header on every request when set.
	APIKey  string
	Timeout time.Duration
}

// Client is a circuit-broken client for the managed auth provider.
type Client struct {
	oauth      *oauth2.Config
	userURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient builds a Client. It returns nil when no token URL is configured.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.TokenURL == "" {
		return nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &apiKeyTransport{apiKey: cfg.APIKey, base: http.DefaultTransport},
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "auth-provider",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures >= 5 || (counts.Requests >= 10 && failureRatio >= 0.5)
		},
		// Rejected credentials are an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, apperrors.ErrUnauthorized)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		userURL:    cfg.UserURL,
		httpClient: httpClient,
		breaker:    breaker,
	}
}

// PasswordLogin exchanges an email/password pair for provider tokens.
func (c *Client) PasswordLogin(ctx context.Context, email, password string) (*domain.ProviderSession, error) {
	res, err := c.execute(func() (interface{}, error) {
		token, err := c.oauth.PasswordCredentialsToken(c.oauthContext(ctx), email, password)
		if err != nil {
			return nil, classifyTokenError(err)
		}
		return token, nil
	})
	if err != nil {
		return nil, err
	}
	return toSession(res.(*oauth2.Token), ""), nil
}

// Refresh trades a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.ProviderSession, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: no refresh token", apperrors.ErrUnauthorized)
	}
	res, err := c.execute(func() (interface{}, error) {
		// An already-expired token makes the token source refresh immediately.
		src := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{
			RefreshToken: refreshToken,
			Expiry:       time.Now().Add(-time.Minute),
		})
		token, err := src.Token()
		if err != nil {
			return nil, classifyTokenError(err)
		}
		return token, nil
	})
	if err != nil {
		return nil, err
	}
	return toSession(res.(*oauth2.Token), refreshToken), nil
}

// userPayload is the provider's user representation.
type userPayload struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	} `json:"user_metadata"`
}

// FetchUser returns the user owning accessToken.
func (c *Client) FetchUser(ctx context.Context, accessToken string) (*domain.ProviderUser, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: no access token", apperrors.ErrUnauthorized)
	}
	if c.userURL == "" {
		return nil, fmt.Errorf("%w: provider user endpoint not configured", apperrors.ErrUnavailable)
	}
	res, err := c.execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build provider user request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: provider user request failed: %v", apperrors.ErrUnavailable, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, fmt.Errorf("%w: provider rejected access token", apperrors.ErrUnauthorized)
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("%w: provider returned %s for user lookup", apperrors.ErrUnavailable, resp.Status)
		}

		var payload userPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("failed to decode provider user: %w", err)
		}
		return &payload, nil
	})
	if err != nil {
		return nil, err
	}

	payload := res.(*userPayload)
	if payload.Email == "" {
		return nil, fmt.Errorf("%w: provider user has no email", apperrors.ErrUnauthorized)
	}
	name := payload.UserMetadata.Name
	if name == "" {
		name = payload.UserMetadata.FullName
	}
	return &domain.ProviderUser{
		ID:    payload.ID,
		Email: strings.ToLower(payload.Email),
		Name:  name,
		Role:  payload.UserMetadata.Role,
	}, nil
}

func (c *Client) execute(fn func() (interface{}, error)) (interface{}, error) {
	res, err := c.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: auth provider circuit open: %v", apperrors.ErrUnavailable, err)
	}
	return res, err
}

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// classifyTokenError maps 4xx token endpoint answers to ErrUnauthorized and everything
// else to ErrUnavailable.
func classifyTokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		status := retrieveErr.Response.StatusCode
		if status >= 400 && status < 500 {
			return fmt.Errorf("%w: provider rejected credentials (%d)", apperrors.ErrUnauthorized, status)
		}
	}
	return fmt.Errorf("%w: provider token request failed: %v", apperrors.ErrUnavailable, err)
}

func toSession(token *oauth2.Token, previousRefresh string) *domain.ProviderSession {
	refresh := token.RefreshToken
	if refresh == "" {
		refresh = previousRefresh
	}
	return &domain.ProviderSession{
		AccessToken:  token.AccessToken,
		RefreshToken: refresh,
		ExpiresAt:    token.Expiry,
	}
}

// apiKeyTransport adds the provider api key to every outgoing request.
type apiKeyTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.apiKey == "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("apikey", t.apiKey)
	return t.base.RoundTrip(clone)
}
