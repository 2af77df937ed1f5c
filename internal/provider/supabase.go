package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Client talks to the Supabase auth (GoTrue) REST API.
//
// The client keeps the most recently issued session so CurrentUser can
// resolve "the signed-in user" without the caller re-supplying a token,
// mirroring how the hosted SDK behaves.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *zap.Logger

	mu      sync.RWMutex
	session *Session
}

// NewClient builds a Supabase auth client. baseURL is the project URL
// without a trailing slash; anonKey is the project's public API key.
func NewClient(baseURL, anonKey string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     log,
	}
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Default returns the process-wide client, constructing it on first
// use. Repeated calls ignore later arguments, which guards against
// duplicate construction under multi-worker startup.
func Default(baseURL, anonKey string, log *zap.Logger) *Client {
	defaultOnce.Do(func() {
		defaultClient = NewClient(baseURL, anonKey, log)
	})
	return defaultClient
}

// GetUser verifies the access token against GET /auth/v1/user.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("provider: build request: %w", err)
	}
	c.setHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider: get user: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var u User
		if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
			return nil, fmt.Errorf("provider: decode user: %w", err)
		}
		if u.ID == "" {
			return nil, ErrInvalidToken
		}
		return &u, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	default:
		return nil, c.apiError(resp)
	}
}

// SignUp registers a new account via POST /auth/v1/signup.
func (c *Client) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var out struct {
		User
		Session *Session `json:"session"`
		// GoTrue returns tokens at the top level when no confirmation
		// step is configured.
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := c.post(ctx, "/auth/v1/signup", "", body, &out); err != nil {
		return nil, err
	}

	res := &AuthResult{User: &User{ID: out.ID, Email: out.Email}, Session: out.Session}
	if res.Session == nil && out.AccessToken != "" {
		res.Session = &Session{
			AccessToken:  out.AccessToken,
			RefreshToken: out.RefreshToken,
			TokenType:    out.TokenType,
			ExpiresIn:    out.ExpiresIn,
		}
	}
	c.storeSession(res.Session)
	return res, nil
}

// SignInWithPassword exchanges credentials for a session via
// POST /auth/v1/token?grant_type=password.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var out struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int    `json:"expires_in"`
		User         *User  `json:"user"`
	}
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", "", body, &out); err != nil {
		return nil, err
	}

	res := &AuthResult{
		User: out.User,
		Session: &Session{
			AccessToken:  out.AccessToken,
			RefreshToken: out.RefreshToken,
			TokenType:    out.TokenType,
			ExpiresIn:    out.ExpiresIn,
		},
	}
	c.storeSession(res.Session)
	return res, nil
}

// SignOut revokes the token via POST /auth/v1/logout and drops the
// ambient session when it matches.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	err := c.post(ctx, "/auth/v1/logout", accessToken, nil, nil)

	c.mu.Lock()
	if c.session != nil && c.session.AccessToken == accessToken {
		c.session = nil
	}
	c.mu.Unlock()

	return err
}

// CurrentUser resolves the user of the ambient session.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	c.mu.RLock()
	sess := c.session
	c.mu.RUnlock()

	if sess == nil || sess.AccessToken == "" {
		return nil, ErrNoSession
	}
	return c.GetUser(ctx, sess.AccessToken)
}

func (c *Client) storeSession(s *Session) {
	if s == nil || s.AccessToken == "" {
		return
	}
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *Client) setHeaders(req *http.Request, accessToken string) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}
}

func (c *Client) post(ctx context.Context, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("provider: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("provider: build request: %w", err)
	}
	c.setHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("provider: decode response: %w", err)
	}
	return nil
}

// apiError extracts the provider's message from an error response.
// GoTrue is inconsistent about the field name across endpoints.
func (c *Client) apiError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	msg := ""
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.Msg != "":
			msg = body.Msg
		case body.Message != "":
			msg = body.Message
		case body.ErrorDescription != "":
			msg = body.ErrorDescription
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(data))
		c.logger.Warn("provider returned unstructured error body",
			zap.Int("status", resp.StatusCode))
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
