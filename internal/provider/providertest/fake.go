// Package providertest provides an in-memory Provider for tests.
package providertest

import (
	"context"
	"sync"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/provider"
)

// Fake implements provider.Provider from in-memory maps. Zero value is
// usable; all methods are safe for concurrent use.
type Fake struct {
	mu sync.Mutex

	users    map[string]*provider.User // access token -> user
	accounts map[string]string         // email -> password

	// Err, when set, is returned by every call. Models transport
	// failures and other unexpected provider errors.
	Err error

	// SignUpErr and SignInErr override Err for the respective calls.
	SignUpErr error
	SignInErr error

	session *provider.Session
}

// AddToken registers an access token that resolves to the given user.
func (f *Fake) AddToken(token string, u provider.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.users == nil {
		f.users = make(map[string]*provider.User)
	}
	f.users[token] = &u
}

// AddAccount registers credentials accepted by SignInWithPassword.
func (f *Fake) AddAccount(email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.accounts == nil {
		f.accounts = make(map[string]string)
	}
	f.accounts[email] = password
}

func (f *Fake) GetUser(_ context.Context, accessToken string) (*provider.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	u, ok := f.users[accessToken]
	if !ok {
		return nil, provider.ErrInvalidToken
	}
	cp := *u
	return &cp, nil
}

func (f *Fake) SignUp(_ context.Context, email, _ string) (*provider.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SignUpErr != nil {
		return nil, f.SignUpErr
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if f.accounts != nil {
		if _, exists := f.accounts[email]; exists {
			return nil, &provider.APIError{StatusCode: 422, Message: "User already registered"}
		}
	}

	u := &provider.User{ID: "fake-" + email, Email: email}
	sess := &provider.Session{AccessToken: "token-" + email, TokenType: "bearer", ExpiresIn: 3600}
	f.session = sess

	if f.users == nil {
		f.users = make(map[string]*provider.User)
	}
	f.users[sess.AccessToken] = u

	return &provider.AuthResult{User: u, Session: sess}, nil
}

func (f *Fake) SignInWithPassword(_ context.Context, email, password string) (*provider.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SignInErr != nil {
		return nil, f.SignInErr
	}
	if f.Err != nil {
		return nil, f.Err
	}
	stored, ok := f.accounts[email]
	if !ok || stored != password {
		return nil, &provider.APIError{StatusCode: 400, Message: "Invalid login credentials"}
	}

	u := &provider.User{ID: "fake-" + email, Email: email}
	sess := &provider.Session{AccessToken: "token-" + email, TokenType: "bearer", ExpiresIn: 3600}
	f.session = sess

	if f.users == nil {
		f.users = make(map[string]*provider.User)
	}
	f.users[sess.AccessToken] = u

	return &provider.AuthResult{User: u, Session: sess}, nil
}

func (f *Fake) SignOut(_ context.Context, accessToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	delete(f.users, accessToken)
	if f.session != nil && f.session.AccessToken == accessToken {
		f.session = nil
	}
	return nil
}

func (f *Fake) CurrentUser(ctx context.Context) (*provider.User, error) {
	f.mu.Lock()
	sess := f.session
	f.mu.Unlock()

	if sess == nil {
		return nil, provider.ErrNoSession
	}
	return f.GetUser(ctx, sess.AccessToken)
}

var _ provider.Provider = (*Fake)(nil)
