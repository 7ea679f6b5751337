package backend

import (
	"context"
	"net/url"
	"time"

	"github.com/aretw0/curio/pkg/domain"
)

// Session cookie names. Both are HttpOnly; the browser is the only
// other party that ever sees them.
const (
	accessCookie  = "curio-access-token"
	refreshCookie = "curio-refresh-token"
)

// refreshMaxAge keeps the refresh cookie alive long enough to span
// absences; the service itself decides whether the token is still good.
const refreshMaxAge = 30 * 24 * time.Hour

// Session is the token pair issued by the auth service.
type Session struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	RefreshToken string      `json:"refresh_token"`
	User         domain.User `json:"user"`
}

// SignUp registers a new account. Depending on service configuration
// the response may already carry a session (auto-confirm) or not
// (email confirmation pending); a session, when present, is stored.
func (c *Client) SignUp(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	var s Session
	if err := c.do(ctx, "POST", "/auth/v1/signup", nil, creds, &s, nil); err != nil {
		return domain.User{}, err
	}
	if s.AccessToken != "" {
		c.storeSession(s)
	}
	return s.User, nil
}

// SignInWithPassword exchanges credentials for a session and stores it
// through the cookie write callback.
func (c *Client) SignInWithPassword(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	q := url.Values{"grant_type": {"password"}}
	var s Session
	if err := c.do(ctx, "POST", "/auth/v1/token", q, creds, &s, nil); err != nil {
		return domain.User{}, err
	}
	c.storeSession(s)
	return s.User, nil
}

// SignOut revokes the presented session and clears both session
// cookies. Cookies are cleared even when revocation fails, so a dead
// token never strands the browser in a half-signed-in state.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.do(ctx, "POST", "/auth/v1/logout", nil, nil, nil, nil)
	c.clearSession()
	if err != nil && !IsStatus(err, 401) {
		return err
	}
	return nil
}

// User returns the identity behind the presented session. An access
// token at or near expiry is refreshed first; the rotated pair flows
// out through the cookie write callback as part of this call.
func (c *Client) User(ctx context.Context) (domain.User, error) {
	tok := c.bearerToken()
	if tok == "" {
		// No access token: a refresh token alone can still recover the
		// session (the access cookie expires before the refresh cookie).
		if c.cookieValue(refreshCookie) == "" {
			return domain.User{}, domain.ErrNotAuthenticated
		}
		if err := c.refresh(ctx); err != nil {
			return domain.User{}, err
		}
	} else if c.accessToken == "" && tokenNeedsRefresh(tok, c.now()) {
		if err := c.refresh(ctx); err != nil {
			return domain.User{}, err
		}
	}

	var u domain.User
	if err := c.do(ctx, "GET", "/auth/v1/user", nil, nil, &u, nil); err != nil {
		if IsStatus(err, 401) {
			return domain.User{}, domain.ErrNotAuthenticated
		}
		return domain.User{}, err
	}
	return u, nil
}

// refresh trades the refresh cookie for a new token pair.
func (c *Client) refresh(ctx context.Context) error {
	rt := c.cookieValue(refreshCookie)
	if rt == "" {
		return domain.ErrNotAuthenticated
	}
	q := url.Values{"grant_type": {"refresh_token"}}
	body := map[string]string{"refresh_token": rt}
	var s Session
	if err := c.do(ctx, "POST", "/auth/v1/token", q, body, &s, nil); err != nil {
		if IsStatus(err, 400) || IsStatus(err, 401) {
			// Refresh token revoked or expired: the session is simply gone.
			c.clearSession()
			return domain.ErrNotAuthenticated
		}
		return err
	}
	c.storeSession(s)
	return nil
}

func (c *Client) cookieValue(name string) string {
	if c.cookies.Get == nil {
		return ""
	}
	return c.cookies.Get()[name]
}

// storeSession emits the access/refresh cookie pair, access first so a
// browser applying headers in order lands on the freshest token.
func (c *Client) storeSession(s Session) {
	c.accessToken = s.AccessToken

	access := c.attrs
	if s.ExpiresIn > 0 {
		access.MaxAge = s.ExpiresIn
	}
	refresh := c.attrs
	refresh.MaxAge = int(refreshMaxAge.Seconds())

	if c.cookies.Set != nil {
		c.cookies.Set([]SetCookie{
			{Name: accessCookie, Value: s.AccessToken, CookieAttributes: access},
			{Name: refreshCookie, Value: s.RefreshToken, CookieAttributes: refresh},
		})
	}
}

// clearSession emits expiring instructions for both session cookies.
func (c *Client) clearSession() {
	c.accessToken = ""
	if c.cookies.Set == nil {
		return
	}
	gone := c.attrs
	gone.MaxAge = -1
	c.cookies.Set([]SetCookie{
		{Name: accessCookie, CookieAttributes: gone},
		{Name: refreshCookie, CookieAttributes: gone},
	})
}
