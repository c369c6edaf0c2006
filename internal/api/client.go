// Package api is a thin JSON client for the storefront backend
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/hashicorp/go-hclog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned by a nil Client, i.e. when no backend URL is set
var ErrNotConfigured = errors.New("api: backend not configured")

// Error is a non-2xx response from the backend
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// TokenSource supplies the bearer token for a request, "" for anonymous calls
type TokenSource interface {
	Token(ctx context.Context) string
}

type tokenKey struct{}

// WithToken attaches a bearer token to ctx; it is used by ContextTokens
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// ContextTokens reads the token set by WithToken
type ContextTokens struct{}

func (ContextTokens) Token(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}

// Client calls the backend REST endpoints. A nil *Client is valid and
// fails every call with ErrNotConfigured.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     hclog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithTokenSource selects where bearer tokens come from, ContextTokens by default
func WithTokenSource(ts TokenSource) Option {
	return func(cl *Client) { cl.tokens = ts }
}

func WithLogger(l hclog.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// NewClient creates a client for the backend at baseURL, e.g. "https://api.luxegear.store".
// An empty baseURL returns nil.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		return nil
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
		tokens: ContextTokens{},
		log:    hclog.NewNullLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Auth() *AuthAPI         { return &AuthAPI{c} }
func (c *Client) Products() *ProductsAPI { return &ProductsAPI{c} }
func (c *Client) Orders() *OrdersAPI     { return &OrdersAPI{c} }
func (c *Client) Admin() *AdminAPI       { return &AdminAPI{c} }

// Configured reports whether calls can reach a backend
func (c *Client) Configured() bool {
	return c != nil
}

type errorBody struct {
	Message string `json:"message"`
}

// do sends body as JSON and decodes the response into out when out is not nil
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	if c == nil {
		return ErrNotConfigured
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("api: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t := c.tokens.Token(ctx); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	c.log.Debug("Calling backend", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Backend request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		if eb.Message == "" {
			eb.Message = "Request failed"
		}
		c.log.Debug("Backend returned error", "status", resp.StatusCode, "message", eb.Message)
		return &Error{Status: resp.StatusCode, Message: eb.Message}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decoding response: %w", err)
	}
	return nil
}

// StatusCode returns the HTTP status of an *Error in err's chain, 0 otherwise
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
