// Package auth implements the hosted session provider client: sign-up,
// sign-in, sign-out, current-session lookup, and session-change
// subscriptions.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"taskdeck/internal/domain"
)

// Doer executes HTTP requests. *http.Client satisfies it; tests inject
// their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

const maxBody = 1 << 20

// Client wraps the hosted auth REST surface and tracks the current
// session. Session changes are fanned out to subscribers.
type Client struct {
	baseURL string
	apiKey  string
	http    Doer
	logger  *slog.Logger

	mu          sync.Mutex
	session     *domain.Session
	subscribers map[int]func(*domain.Session)
	nextSubID   int
}

// NewClient creates a new auth client with dependency injection.
func NewClient(baseURL, apiKey string, doer Doer, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		http:        doer,
		logger:      logger,
		subscribers: make(map[int]func(*domain.Session)),
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type errorResponse struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

// SignUp registers a new account. When the provider issues a session
// immediately (email confirmation off), the client adopts it and
// notifies subscribers.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	c.logger.Debug("signing up", "email", email)

	session, err := c.tokenCall(ctx, "signup", c.baseURL+"/auth/v1/signup", email, password)
	if err != nil {
		return err
	}

	if session != nil {
		c.setSession(session)
	}
	return nil
}

// SignIn authenticates with the password grant and adopts the returned
// session.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	c.logger.Debug("signing in", "email", email)

	session, err := c.tokenCall(ctx, "signin", c.baseURL+"/auth/v1/token?grant_type=password", email, password)
	if err != nil {
		return err
	}
	if session == nil {
		return &domain.AuthError{Op: "signin", Message: "no session in response", Err: domain.ErrBadPayload}
	}

	c.setSession(session)
	return nil
}

// SignOut revokes the current session. The local session is cleared and
// subscribers are notified even when the revoke call fails; a stale
// token is the provider's problem, not the UI's.
func (c *Client) SignOut(ctx context.Context) error {
	c.logger.Debug("signing out")

	current := c.Current()
	defer c.setSession(nil)

	if current == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return &domain.AuthError{Op: "signout", Err: err}
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+current.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.AuthError{Op: "signout", Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.AuthError{Op: "signout", Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	return nil
}

// Current returns the current session, or nil when signed out.
func (c *Client) Current() *domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	session := *c.session
	return &session
}

// AccessToken returns the current access token, or empty when signed
// out. Handed to the store client as its token source.
func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.AccessToken
}

// Subscribe registers a callback invoked on every session change with
// the new session (nil on sign-out). The returned function unsubscribes
// and must be called when the owning view is torn down.
func (c *Client) Subscribe(fn func(*domain.Session)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

func (c *Client) setSession(session *domain.Session) {
	c.mu.Lock()
	c.session = session
	subs := make([]func(*domain.Session), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(session)
	}
}

// tokenCall posts credentials and decodes the session from the
// response. A response without an access token returns (nil, nil).
func (c *Client) tokenCall(ctx context.Context, op, u, email, password string) (*domain.Session, error) {
	payload, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, &domain.AuthError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.AuthError{Op: op, Err: err}
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.AuthError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &domain.AuthError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		message := fmt.Sprintf("unexpected status %d", resp.StatusCode)
		if json.Unmarshal(body, &errResp) == nil {
			if errResp.ErrorDescription != "" {
				message = errResp.ErrorDescription
			} else if errResp.Message != "" {
				message = errResp.Message
			}
		}
		return nil, &domain.AuthError{Op: op, Message: message}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, &domain.AuthError{Op: op, Err: fmt.Errorf("%w: %v", domain.ErrBadPayload, err)}
	}

	if token.AccessToken == "" {
		return nil, nil
	}

	c.logger.Debug("session established", "user", token.User.ID)
	return &domain.Session{
		AccessToken: token.AccessToken,
		UserID:      token.User.ID,
		Email:       token.User.Email,
	}, nil
}
