package middleware

import (
	"context"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// identityKey is the key used to store the authenticated caller in the request context.
const identityKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying the authenticated caller.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the authenticated caller set by AuthMiddleware.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	identity, ok := c.Request.Context().Value(identityKey).(domain.Identity)
	if !ok || identity.UserID <= 0 {
		return domain.Identity{}, false
	}
	return identity, true
}
