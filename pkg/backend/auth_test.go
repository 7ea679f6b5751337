package backend

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/curio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures the cookie batches a client emits, in order.
type recorder struct {
	inbound map[string]string
	batches [][]SetCookie
}

func (r *recorder) access() CookieAccess {
	return CookieAccess{
		Get: func() map[string]string { return r.inbound },
		Set: func(batch []SetCookie) { r.batches = append(r.batches, batch) },
	}
}

// unsignedToken builds a JWT-shaped token with the given expiry. The
// client never verifies signatures, so "unsigned" is enough.
func unsignedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"sub": "user-1", "exp": exp.Unix()})
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

func authService(t *testing.T) (*httptest.Server, *Session) {
	t.Helper()
	sess := &Session{
		AccessToken:  unsignedToken(t, time.Now().Add(time.Hour)),
		TokenType:    "bearer",
		ExpiresIn:    3600,
		RefreshToken: "refresh-1",
		User:         domain.User{ID: "user-1", Email: "a@example.com"},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("grant_type") {
		case "password":
			var creds domain.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			if creds.Password != "correct" {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error_description":"Invalid login credentials"}`)
				return
			}
			json.NewEncoder(w).Encode(sess)
		case "refresh_token":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body["refresh_token"] != sess.RefreshToken {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error_description":"Invalid Refresh Token"}`)
				return
			}
			rotated := *sess
			rotated.AccessToken = unsignedToken(t, time.Now().Add(time.Hour))
			rotated.RefreshToken = "refresh-2"
			json.NewEncoder(w).Encode(rotated)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	mux.HandleFunc("GET /auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if len(auth) < 8 || auth[:7] != "Bearer " || auth[7:] == "anon-key" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"msg":"invalid JWT"}`)
			return
		}
		json.NewEncoder(w).Encode(sess.User)
	})
	mux.HandleFunc("POST /auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sess)
	})
	mux.HandleFunc("POST /auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, sess
}

func TestSignInWithPassword(t *testing.T) {
	srv, sess := authService(t)
	rec := &recorder{inbound: map[string]string{}}
	c := New(Config{URL: srv.URL, Key: "anon-key"}, rec.access())

	u, err := c.SignInWithPassword(context.Background(), domain.Credentials{Email: "a@example.com", Password: "correct"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)

	// One batch, access cookie first, then refresh.
	require.Len(t, rec.batches, 1)
	batch := rec.batches[0]
	require.Len(t, batch, 2)
	assert.Equal(t, accessCookie, batch[0].Name)
	assert.Equal(t, sess.AccessToken, batch[0].Value)
	assert.Equal(t, 3600, batch[0].MaxAge)
	assert.Equal(t, refreshCookie, batch[1].Name)
	assert.Equal(t, "refresh-1", batch[1].Value)
}

func TestSignInWithPassword_BadCredentials(t *testing.T) {
	srv, _ := authService(t)
	rec := &recorder{inbound: map[string]string{}}
	c := New(Config{URL: srv.URL, Key: "anon-key"}, rec.access())

	_, err := c.SignInWithPassword(context.Background(), domain.Credentials{Email: "a@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Contains(t, err.Error(), "Invalid login credentials")
	// Failures never write cookies.
	assert.Empty(t, rec.batches)
}

func TestUser_NoSessionPresented(t *testing.T) {
	srv, _ := authService(t)
	rec := &recorder{inbound: map[string]string{}}
	c := New(Config{URL: srv.URL, Key: "anon-key"}, rec.access())

	_, err := c.User(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestUser_ValidToken(t *testing.T) {
	srv, _ := authService(t)
	rec := &recorder{inbound: map[string]string{
		accessCookie: unsignedToken(t, time.Now().Add(time.Hour)),
	}}
	c := New(Config{URL: srv.URL, Key: "anon-key"}, rec.access())

	u, err := c.User(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)
	// Fresh token: no rotation, no cookie writes.
	assert.Empty(t, rec.batches)
}

func TestUser_ExpiredTokenRefreshesMidRequest(t *testing.T) {
	srv, _ := authService(t)
	rec := &recorder{inbound: map[string]string{
		accessCookie:  unsignedToken(t, time.Now().Add(-time.Minute)),
		refreshCookie: "refresh-1",
	}}
	c := New(Config{URL: srv.URL, Key: "anon-key"}, rec.access())

	u, err := c.User(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)

	// The rotation surfaced as a cookie batch during the call.
	require.Len(t, rec.batches, 1)
	batch := rec.batches[0]
	require.Len(t, batch, 2)
	assert.Equal(t, accessCookie, batch[0].Name)
	assert.NotEqual(t, rec.inbound[accessCookie], batch[0].Value)
	assert.Equal(t, "refresh-2", batch[1].Value)
}

func TestUser_RefreshOnlySession(t *testing.T) {
	// Access cookie expired out of the browser entirely; the refresh
	// cookie alone recovers the session.
	srv, _ := authService(t)
	rec := &recorder{inbound: map[string]string{refreshCookie: "refresh-1"}}
	c := New(Config{URL: srv.URL, Key: "anon-key"}, rec.access())

	u, err := c.User(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	require.Len(t, rec.batches, 1)
}

func TestUser_DeadRefreshToken(t *testing.T) {
	srv, _ := authService(t)
	rec := &recorder{inbound: map[string]string{
		accessCookie:  unsignedToken(t, time.Now().Add(-time.Minute)),
		refreshCookie: "revoked",
	}}
	c := New(Config{URL: srv.URL, Key: "anon-key"}, rec.access())

	_, err := c.User(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	// The dead session cookies were cleared.
	require.Len(t, rec.batches, 1)
	for _, ins := range rec.batches[0] {
		assert.Equal(t, -1, ins.MaxAge)
		assert.Empty(t, ins.Value)
	}
}

func TestSignOut(t *testing.T) {
	srv, _ := authService(t)
	rec := &recorder{inbound: map[string]string{
		accessCookie: unsignedToken(t, time.Now().Add(time.Hour)),
	}}
	c := New(Config{URL: srv.URL, Key: "anon-key"}, rec.access())

	require.NoError(t, c.SignOut(context.Background()))

	require.Len(t, rec.batches, 1)
	batch := rec.batches[0]
	require.Len(t, batch, 2)
	assert.Equal(t, accessCookie, batch[0].Name)
	assert.Equal(t, refreshCookie, batch[1].Name)
	for _, ins := range batch {
		assert.Equal(t, -1, ins.MaxAge)
	}
}

func TestTokenNeedsRefresh(t *testing.T) {
	now := time.Now()

	t.Run("Fresh", func(t *testing.T) {
		assert.False(t, tokenNeedsRefresh(unsignedToken(t, now.Add(time.Hour)), now))
	})
	t.Run("Expired", func(t *testing.T) {
		assert.True(t, tokenNeedsRefresh(unsignedToken(t, now.Add(-time.Minute)), now))
	})
	t.Run("Within Leeway", func(t *testing.T) {
		assert.True(t, tokenNeedsRefresh(unsignedToken(t, now.Add(10*time.Second)), now))
	})
	t.Run("Garbage", func(t *testing.T) {
		assert.True(t, tokenNeedsRefresh("not-a-jwt", now))
	})
}
