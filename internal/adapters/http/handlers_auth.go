package http

import (
	"errors"
	"net"
	"net/http"

	"github.com/aretw0/curio/pkg/backend"
	"github.com/aretw0/curio/pkg/domain"
)

// userMessage turns a backend failure into something worth putting in
// front of a user. Remote messages pass through; anything else becomes
// a generic notice (the log has the detail).
func userMessage(err error) string {
	var be *backend.Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return "The service is temporarily unavailable. Please try again."
}

// clientKey builds the rate-limiter key for this request.
func clientKey(r *http.Request, action string) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return action + ":" + host
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	client, acc := s.bridge.Bind(r)
	if _, err := client.User(r.Context()); err == nil {
		// Already signed in; the bridge may have rotated tokens while
		// checking, so flush through the shared redirect path.
		s.redirect(w, r, acc, "/")
		return
	}
	s.render(w, acc, http.StatusOK, "login", pageData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	client, acc := s.bridge.Bind(r)

	ok, err := s.limiter.Allow(r.Context(), clientKey(r, "login"))
	if err != nil {
		s.logger.Error("rate limiter unavailable", "err", err, "request_id", requestID(r.Context()))
		// Fail open: a broken limiter store must not lock users out.
		ok = true
	}
	if !ok {
		s.render(w, acc, http.StatusTooManyRequests, "login", pageData{Error: domain.ErrRateLimited.Error()})
		return
	}

	var creds domain.Credentials
	if err := decodeForm(r, &creds); err != nil {
		s.render(w, acc, http.StatusBadRequest, "login", pageData{Error: "Invalid form submission."})
		return
	}
	if creds.Email == "" || creds.Password == "" {
		s.render(w, acc, http.StatusBadRequest, "login", pageData{Error: "Email and password are required.", Email: creds.Email})
		return
	}

	if _, err := client.SignInWithPassword(r.Context(), creds); err != nil {
		s.logger.Info("sign-in rejected", "email", creds.Email, "err", err, "request_id", requestID(r.Context()))
		s.render(w, acc, http.StatusUnauthorized, "login", pageData{Error: userMessage(err), Email: creds.Email})
		return
	}
	s.redirect(w, r, acc, "/")
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	_, acc := s.bridge.Bind(r)
	s.render(w, acc, http.StatusOK, "register", pageData{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	client, acc := s.bridge.Bind(r)

	ok, err := s.limiter.Allow(r.Context(), clientKey(r, "register"))
	if err != nil {
		s.logger.Error("rate limiter unavailable", "err", err, "request_id", requestID(r.Context()))
		ok = true
	}
	if !ok {
		s.render(w, acc, http.StatusTooManyRequests, "register", pageData{Error: domain.ErrRateLimited.Error()})
		return
	}

	var creds domain.Credentials
	if err := decodeForm(r, &creds); err != nil {
		s.render(w, acc, http.StatusBadRequest, "register", pageData{Error: "Invalid form submission."})
		return
	}
	if creds.Email == "" || creds.Password == "" {
		s.render(w, acc, http.StatusBadRequest, "register", pageData{Error: "Email and password are required.", Email: creds.Email})
		return
	}

	if _, err := client.SignUp(r.Context(), creds); err != nil {
		s.render(w, acc, http.StatusUnprocessableEntity, "register", pageData{Error: userMessage(err), Email: creds.Email})
		return
	}

	if acc.Len() > 0 {
		// The service auto-confirmed and issued a session.
		s.redirect(w, r, acc, "/")
		return
	}
	s.render(w, acc, http.StatusOK, "login", pageData{
		Notice: "Account created. Confirm your email, then sign in.",
		Email:  creds.Email,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	client, acc := s.bridge.Bind(r)
	if err := client.SignOut(r.Context()); err != nil {
		// The cookies are cleared regardless; the revocation failure is
		// only worth a log line.
		s.logger.Warn("sign-out revocation failed", "err", err, "request_id", requestID(r.Context()))
	}
	s.redirect(w, r, acc, "/login")
}
