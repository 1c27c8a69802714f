// Package client is the API client for a PharmaLytics Nexus server. It keeps
// one authenticated session per client, persisted through a SessionStore so a
// new process picks up where the last one left off.
package client

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

	"github.com/pharmalytics/nexus-go/internal/model"
)

// APIError is the normalized failure for any request: a transport failure, a
// non-success response, or a response body that does not match the expected
// shape.
type APIError struct {
	Message    string
	StatusCode int // zero when no response was received
}

func (e *APIError) Error() string {
	return e.Message
}

// Client issues requests against a Nexus API server.
//
// The session token is read when each request is built. A Logout that races
// an in-flight request does not cancel it; the request completes with the
// credential it started with.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      SessionStore

	mu      sync.RWMutex
	session Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSessionStore replaces the default file-backed session store.
func WithSessionStore(store SessionStore) Option {
	return func(c *Client) { c.store = store }
}

// New creates a client for the given base URL (origin plus version prefix,
// e.g. "http://localhost:8080/api/v1") and loads any persisted session.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		path, err := DefaultSessionPath()
		if err != nil {
			return nil, fmt.Errorf("resolving session path: %w", err)
		}
		c.store = NewFileSessionStore(path)
	}

	sess, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	c.session = sess

	return c, nil
}

// Token returns the current session token, or "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Token
}

// User returns the cached session user, or nil when unauthenticated.
func (c *Client) User() *model.UserInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.User
}

// Authenticated reports whether the client holds a session token.
func (c *Client) Authenticated() bool {
	return c.Token() != ""
}

// setSession stores a new session in memory and persists it.
func (c *Client) setSession(token string, user *model.UserInfo) error {
	sess := Session{Token: token, User: user}

	c.mu.Lock()
	c.session = sess
	c.mu.Unlock()

	return c.store.Save(sess)
}

// clearSession drops the session from memory and persisted storage.
func (c *Client) clearSession() error {
	c.mu.Lock()
	c.session = Session{}
	c.mu.Unlock()

	return c.store.Clear()
}

// do performs one HTTP call and decodes a successful JSON response into out.
// Every failure is returned as an *APIError. Caller-supplied extra headers
// are merged into the request after the standard ones.
func (c *Client) do(ctx context.Context, method, path string, body, out any, extra http.Header) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encoding request: %v", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("building request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	for key, values := range extra {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("reading response: %v", err), StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Message: errorMessage(raw), StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{
			Message:    fmt.Sprintf("malformed response: %v", err),
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}

// errorMessage extracts the server's error field from a failure body, falling
// back to a generic message when the body is not the expected JSON shape.
func errorMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return "network error"
	}
	return body.Error
}
