package middleware

import (
	"context"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// identityKey is the key used to store the resolved identity in the request context.
const identityKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromCtx returns the identity stored by the session gate, if any.
func IdentityFromCtx(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*domain.Identity)
	return identity, ok && identity != nil
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin request.
func GetIdentityFromContext(c *gin.Context) (*domain.Identity, bool) {
	return IdentityFromCtx(c.Request.Context())
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin request.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	identity, ok := GetIdentityFromContext(c)
	if !ok || identity.User.UserID == "" {
		return "", false
	}
	return identity.User.UserID, true
}
