package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/curio/internal/logging"
	"github.com/aretw0/curio/pkg/backend"
)

// ErrMissingConfig is returned by New when the backend endpoint or key
// is absent. This is a startup-time configuration error, never a
// per-request one.
var ErrMissingConfig = errors.New("session: backend URL and key are required")

// Bridge builds per-request backend clients whose session-cookie
// traffic is captured into an Accumulator. Construct one at process
// start and share it across requests; the per-request state lives
// entirely in what Bind returns.
type Bridge struct {
	cfg    backend.Config
	attrs  backend.CookieAttributes
	opts   []backend.Option
	logger *slog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger configures the logger handed to each bound client.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithCookieDefaults sets the attributes applied to session cookies
// (path, secure, same-site). Defaults are Path=/, HttpOnly, Lax.
func WithCookieDefaults(attrs backend.CookieAttributes) Option {
	return func(b *Bridge) {
		b.attrs = attrs
	}
}

// WithClientOptions appends extra options to every bound client
// (HTTP client override, test clock).
func WithClientOptions(opts ...backend.Option) Option {
	return func(b *Bridge) {
		b.opts = append(b.opts, opts...)
	}
}

// New creates a Bridge. Missing endpoint configuration fails here,
// once, rather than surfacing per request.
func New(cfg backend.Config, opts ...Option) (*Bridge, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, ErrMissingConfig
	}
	b := &Bridge{
		cfg:    cfg,
		attrs:  backend.CookieAttributes{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Bind snapshots the request's cookies and returns a backend client
// wired to them, plus the accumulator that will hold every Set-Cookie
// header the service requests during handling. The two share ownership
// of the same underlying list: writes made through the client are
// visible through the accumulator once handling completes.
func (b *Bridge) Bind(r *http.Request) (*backend.Client, *Accumulator) {
	set := newCookieSet(r)
	acc := &Accumulator{}

	access := backend.CookieAccess{
		Get: set.Map,
		Set: func(batch []backend.SetCookie) {
			values := make([]string, 0, len(batch))
			for _, ins := range batch {
				if v := Serialize(ins); v != "" {
					values = append(values, v)
				}
			}
			acc.append(values...)
		},
	}

	opts := append([]backend.Option{
		backend.WithCookieDefaults(b.attrs),
		backend.WithLogger(b.logger),
	}, b.opts...)

	return backend.New(b.cfg, access, opts...), acc
}

// Serialize renders one cookie-set instruction as a Set-Cookie header
// value using the standard grammar. An instruction with an invalid
// name serializes to the empty string and is dropped by the bridge.
func Serialize(ins backend.SetCookie) string {
	c := &http.Cookie{
		Name:     ins.Name,
		Value:    ins.Value,
		Path:     ins.Path,
		Domain:   ins.Domain,
		MaxAge:   ins.MaxAge,
		Expires:  ins.Expires,
		Secure:   ins.Secure,
		HttpOnly: ins.HttpOnly,
		SameSite: ins.SameSite,
	}
	return c.String()
}
