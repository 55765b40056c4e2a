// Package api is the typed client for the restaurant backend. Every screen
// of the product talks to the backend exclusively through this package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/itzabhishekgour/smartdine/internal/session"
)

// ErrTableBlocked is returned when the customer menu endpoint answers
// HTTP 423: the restaurant has temporarily blocked the table.
var ErrTableBlocked = errors.New("api: table blocked by restaurant")

// Error is a non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: backend returned %d", e.Status)
	}
	return fmt.Sprintf("api: backend returned %d: %s", e.Status, e.Message)
}

// NotFoundHandler is invoked for 404 responses and transport-level
// failures, mirroring the global response interceptor that force-navigated
// the whole page to the not-found route.
type NotFoundHandler func(err error)

// Client talks to the backend. The bearer token is read from the session
// store on every request, so a login in the same process takes effect
// immediately.
type Client struct {
	baseURL  string
	http     *http.Client
	notFound NotFoundHandler
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithNotFoundHandler registers the global 404/network failure hook.
func WithNotFoundHandler(fn NotFoundHandler) Option {
	return func(c *Client) { c.notFound = fn }
}

// New creates a backend client. The session store supplies the auth token;
// a nil store makes an unauthenticated client.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &authTransport{base: base, store: store}
	return c
}

// authTransport attaches the bearer token from the session store when one
// is present. The customer token wins over the owner token, matching the
// lookup order the request interceptor always used.
type authTransport struct {
	base  http.RoundTripper
	store session.Store
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.store != nil && req.Header.Get("Authorization") == "" {
		token := session.GetOr(t.store, session.KeyToken, "")
		if token == "" {
			token = session.GetOr(t.store, session.KeyOwnerToken, "")
		}
		if token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return t.base.RoundTrip(req)
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// do runs a request, decodes a JSON body into out when non-nil, and maps
// failures: network errors and 404s additionally fire the not-found hook.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		if c.notFound != nil {
			c.notFound(err)
		}
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		if resp.StatusCode == http.StatusNotFound && c.notFound != nil {
			c.notFound(apiErr)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.send(ctx, http.MethodPost, path, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.send(ctx, http.MethodPut, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}

// readErrorMessage pulls a human message out of an error body. The backend
// answers either {"error": "..."} or {"message": "..."}; plain text bodies
// are passed through as-is.
func readErrorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(b) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, "{") {
		return ""
	}
	return s
}
