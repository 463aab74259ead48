package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/google/uuid"
	"google.golang.org/api/idtoken"
)

// IDTokenValidator validates a Google ID token for audience and returns its payload.
type IDTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// googleIdentityProvider verifies Google ID tokens and links them to users rows by email.
type googleIdentityProvider struct {
	BaseService
	clientID string
	validate IDTokenValidator
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

func (p *googleIdentityProvider) authenticate(ctx context.Context, idToken string) (*domain.Identity, error) {
	if p.clientID == "" {
		return nil, portssvc.ErrProviderDisabled
	}
	payload, err := p.validate(ctx, idToken, p.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrUnauthorized, err)
	}

	email, _ := payload.Claims["email"].(string)
	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: google account has no email", apperrors.ErrUnauthorized)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, fmt.Errorf("%w: google email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := p.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if !user.IsActive() {
			return nil, fmt.Errorf("%w: user is inactive", apperrors.ErrUnauthorized)
		}
	case errors.Is(err, apperrors.ErrNotFound):
		name, _ := payload.Claims["name"].(string)
		if strings.TrimSpace(name) == "" {
			name = email
		}
		now := p.now()
		user = &domain.User{
			UserID:      uuid.NewString(),
			Email:       email,
			Name:        name,
			Role:        domain.RoleUser,
			Status:      domain.StatusActive,
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		}
		if err := p.userRepo.SaveUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("failed to create user for google sign-in: %w", err)
		}
		p.LogInfo(ctx, "Created user from google sign-in", slog.String("user_id", user.UserID))
	default:
		return nil, err
	}

	return &domain.Identity{User: *user, Method: domain.AuthMethodGoogle}, nil
}
