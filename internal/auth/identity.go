package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Identity is the authenticated caller, resolved from a verified access
// token. It lives for one request only and is never persisted here.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// ginIdentityKey stores the identity in gin.Context for handlers that
// read through c.Get instead of the request context.
const ginIdentityKey = "auth_identity"

// WithIdentity stores the authenticated identity in the context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the authenticated identity from context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}

// IdentityFromGin extracts the authenticated identity set by WithAuth.
func IdentityFromGin(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(ginIdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}
