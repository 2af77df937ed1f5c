// Package auth gates protected routes. It extracts the bearer token,
// verifies it against the identity provider, and attaches the resolved
// identity to the request. Every failure path resolves into a typed
// response value; nothing here panics or leaks provider errors.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/httpx"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/provider"
)

const bearerPrefix = "Bearer "

// Client-visible failure messages. The distinction between "token
// rejected" and "provider unreachable" is preserved in logs only.
const (
	MsgHeaderRequired = "Authorization header is required"
	MsgInvalidToken   = "Invalid or expired token"
	MsgAuthFailed     = "Authentication failed"
)

// IdentityCache is an optional short-TTL cache of verified identities,
// keyed by the raw token. A miss falls through to the provider.
type IdentityCache interface {
	Get(ctx context.Context, token string) (*Identity, bool)
	Set(ctx context.Context, token string, id *Identity)
	Invalidate(ctx context.Context, token string)
}

// Middleware verifies bearer credentials against the identity provider.
type Middleware struct {
	provider provider.Provider
	cache    IdentityCache // may be nil
	logger   *zap.Logger
}

// Option configures the Middleware.
type Option func(*Middleware)

// WithCache installs a verified-identity cache.
func WithCache(c IdentityCache) Option {
	return func(m *Middleware) { m.cache = c }
}

// NewMiddleware builds the auth middleware.
func NewMiddleware(p provider.Provider, log *zap.Logger, opts ...Option) *Middleware {
	m := &Middleware{provider: p, logger: log}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Authenticate validates the request's bearer credential. It returns
// the resolved identity, or the failure response the caller must write.
// Exactly one of the two return values is non-nil.
func (m *Middleware) Authenticate(r *http.Request) (*Identity, *httpx.Response) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		resp := httpx.Unauthorized(MsgHeaderRequired)
		return nil, &resp
	}

	// May be empty when the header is exactly "Bearer "; the provider
	// rejects it like any other bad token.
	token := header[len(bearerPrefix):]

	if m.cache != nil {
		if id, ok := m.cache.Get(r.Context(), token); ok {
			return id, nil
		}
	}

	user, err := m.provider.GetUser(r.Context(), token)
	switch {
	case errors.Is(err, provider.ErrInvalidToken):
		resp := httpx.Unauthorized(MsgInvalidToken)
		return nil, &resp
	case err != nil:
		m.logger.Error("token verification failed", zap.Error(err))
		resp := httpx.Unauthorized(MsgAuthFailed)
		return nil, &resp
	case user == nil:
		resp := httpx.Unauthorized(MsgInvalidToken)
		return nil, &resp
	}

	id := &Identity{ID: user.ID, Email: user.Email}
	if m.cache != nil {
		m.cache.Set(r.Context(), token, id)
	}
	return id, nil
}

// WithAuth decorates a handler with Authenticate: on failure the
// failure response is written and the handler never runs; on success
// the identity is attached to both the gin and request contexts.
func (m *Middleware) WithAuth(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, failure := m.Authenticate(c.Request)
		if failure != nil {
			failure.AbortJSON(c)
			return
		}

		c.Set(ginIdentityKey, id)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		handler(c)
	}
}

// RequireAuth is WithAuth in middleware position for route groups:
// it authenticates once and lets the chain continue.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return m.WithAuth(func(c *gin.Context) { c.Next() })
}

// InvalidateToken drops the cached identity for the token, if a cache
// is installed. Logout must call this so revocation takes effect
// immediately instead of after the cache TTL.
func (m *Middleware) InvalidateToken(ctx context.Context, token string) {
	if m.cache != nil {
		m.cache.Invalidate(ctx, token)
	}
}

// CurrentUser resolves the identity of the provider's ambient session.
// Absence, expected provider errors, and unexpected errors all collapse
// to nil; only unexpected errors are logged.
func (m *Middleware) CurrentUser(ctx context.Context) *Identity {
	user, err := m.provider.CurrentUser(ctx)
	switch {
	case errors.Is(err, provider.ErrNoSession), errors.Is(err, provider.ErrInvalidToken):
		return nil
	case err != nil:
		if _, expected := provider.AsAPIError(err); !expected {
			m.logger.Error("current user lookup failed", zap.Error(err))
		}
		return nil
	case user == nil:
		return nil
	}
	return &Identity{ID: user.ID, Email: user.Email}
}
