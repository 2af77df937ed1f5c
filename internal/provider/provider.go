// Package provider is the client for the hosted identity service. It
// owns token verification, credential sign-up/sign-in, and the ambient
// session used by CurrentUser. Business code consumes the Provider
// interface only; the Supabase client and the test fake implement it.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// User is the provider's view of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an issued token pair.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthResult is what sign-up and sign-in return. Session may be nil
// when the provider requires email confirmation before issuing tokens.
type AuthResult struct {
	User    *User
	Session *Session
}

var (
	// ErrInvalidToken means the provider rejected the access token.
	ErrInvalidToken = errors.New("provider: invalid or expired token")

	// ErrNoSession means no ambient session is held by the client.
	ErrNoSession = errors.New("provider: no active session")
)

// APIError is an error the provider reported deliberately (bad
// credentials, duplicate registration, rate limit). Its message is raw
// provider text and must be translated before reaching end users.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider: %s (status %d)", e.Message, e.StatusCode)
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// Provider is the identity service contract.
type Provider interface {
	// GetUser verifies an access token and returns its user.
	// Returns ErrInvalidToken when the provider rejects the token.
	GetUser(ctx context.Context, accessToken string) (*User, error)

	// SignUp registers a new account with email and password.
	SignUp(ctx context.Context, email, password string) (*AuthResult, error)

	// SignInWithPassword exchanges credentials for a session.
	SignInWithPassword(ctx context.Context, email, password string) (*AuthResult, error)

	// SignOut revokes the given access token. Best effort.
	SignOut(ctx context.Context, accessToken string) error

	// CurrentUser resolves the user of the ambient session held by the
	// client, or ErrNoSession when none exists.
	CurrentUser(ctx context.Context) (*User, error)
}
