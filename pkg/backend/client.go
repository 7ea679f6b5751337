package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/curio/internal/logging"
)

// Config identifies the hosted service. Both values are required;
// presence is validated once at process start, not per request.
type Config struct {
	// URL is the service endpoint, e.g. https://project.example.dev.
	URL string
	// Key is the public (anon) access key sent with every call.
	Key string
}

// CookieAttributes are the Set-Cookie attributes applied to session
// cookies. Serialization to the Set-Cookie grammar is the bridge's job.
type CookieAttributes struct {
	Path     string
	Domain   string
	MaxAge   int
	Expires  time.Time
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// SetCookie is one cookie-set instruction emitted by the client.
type SetCookie struct {
	Name  string
	Value string
	CookieAttributes
}

// CookieAccess is the callback pair the session bridge wires into a
// Client. Get returns the cookies the request presented; Set receives
// each batch of cookie instructions in the order the service produced
// them.
type CookieAccess struct {
	Get func() map[string]string
	Set func(batch []SetCookie)
}

// Client issues calls against the hosted service on behalf of one
// request. It caches a rotated access token for the remainder of that
// request but holds no state beyond it.
type Client struct {
	cfg     Config
	http    *http.Client
	cookies CookieAccess
	logger  *slog.Logger
	attrs   CookieAttributes
	now     func() time.Time

	// accessToken is set after a sign-in or refresh so that later calls
	// in the same request use the rotated token, not the stale cookie.
	accessToken string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithLogger configures a logger for call diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCookieDefaults sets the attributes applied to session cookies.
func WithCookieDefaults(attrs CookieAttributes) Option {
	return func(c *Client) {
		c.attrs = attrs
	}
}

// WithClock overrides the time source (used to test token expiry).
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a client bound to one request's cookie callbacks.
func New(cfg Config, cookies CookieAccess, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: 10 * time.Second},
		cookies: cookies,
		logger:  logging.NewNop(),
		attrs:   CookieAttributes{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// bearerToken returns the access token to authorize the next call:
// a token rotated during this request wins over the presented cookie.
func (c *Client) bearerToken() string {
	if c.accessToken != "" {
		return c.accessToken
	}
	if c.cookies.Get == nil {
		return ""
	}
	return c.cookies.Get()[accessCookie]
}

// do performs one HTTP round trip against the service. A non-2xx
// response decodes into *Error; transport failures are wrapped.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any, headers http.Header) error {
	endpoint := strings.TrimRight(c.cfg.URL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", c.cfg.Key)
	if tok := c.bearerToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Key)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call to remote service failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		// Best effort: an undecodable error body still yields the status.
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		_ = json.Unmarshal(data, &eb)
		return &Error{Status: resp.StatusCode, Message: eb.text()}
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}
