package http

import (
	"errors"
	"net/http"

	"github.com/aretw0/curio/pkg/backend"
	"github.com/aretw0/curio/pkg/domain"
	"github.com/aretw0/curio/pkg/session"
	"github.com/go-chi/chi/v5"
)

const itemColumns = "id,user_id,name,notes,created_at,updated_at"

// requireUser binds the bridge and resolves the authenticated user.
// Without one, the browser is sent to /login (with any cookie-clearing
// headers the check produced) and ok is false.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*backend.Client, *session.Accumulator, domain.User, bool) {
	client, acc := s.bridge.Bind(r)
	u, err := client.User(r.Context())
	if err != nil {
		if !errors.Is(err, domain.ErrNotAuthenticated) {
			s.logger.Error("auth check failed", "err", err, "request_id", requestID(r.Context()))
		}
		s.redirect(w, r, acc, "/login")
		return nil, nil, domain.User{}, false
	}
	return client, acc, u, true
}

// renderHome fetches the user's items and renders the home screen.
// A fetch failure renders the screen with an error banner instead of
// failing the request; errMsg, when set, takes precedence.
func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, client *backend.Client, acc *session.Accumulator, u domain.User, errMsg string) {
	var items []domain.Item
	err := client.From("items").
		Select(itemColumns).
		Eq("user_id", u.ID).
		Order("created_at", false).
		Fetch(r.Context(), &items)
	if err != nil {
		s.logger.Error("items fetch failed", "err", err, "request_id", requestID(r.Context()))
		if errMsg == "" {
			errMsg = userMessage(err)
		}
		items = nil
	}

	var edit *domain.Item
	if id := r.URL.Query().Get("edit"); id != "" {
		for i := range items {
			if items[i].ID == id {
				edit = &items[i]
				break
			}
		}
	}

	s.render(w, acc, http.StatusOK, "home", pageData{
		User:  u,
		Items: items,
		Edit:  edit,
		Error: errMsg,
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	client, acc, u, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	s.renderHome(w, r, client, acc, u, "")
}

func (s *Server) handleItemCreate(w http.ResponseWriter, r *http.Request) {
	client, acc, u, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var form domain.ItemForm
	if err := decodeForm(r, &form); err != nil {
		s.renderHome(w, r, client, acc, u, "Invalid form submission.")
		return
	}
	if form.Name == "" {
		s.renderHome(w, r, client, acc, u, "Item name is required.")
		return
	}

	row := map[string]string{"user_id": u.ID, "name": form.Name, "notes": form.Notes}
	if err := client.From("items").Insert(r.Context(), []map[string]string{row}, nil); err != nil {
		s.renderHome(w, r, client, acc, u, userMessage(err))
		return
	}
	s.redirect(w, r, acc, "/")
}

func (s *Server) handleItemUpdate(w http.ResponseWriter, r *http.Request) {
	client, acc, u, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var form domain.ItemForm
	if err := decodeForm(r, &form); err != nil {
		s.renderHome(w, r, client, acc, u, "Invalid form submission.")
		return
	}
	if form.Name == "" {
		s.renderHome(w, r, client, acc, u, "Item name is required.")
		return
	}

	// The user_id filter keeps one user from editing another's rows
	// even if the service-side policy were misconfigured.
	err := client.From("items").
		Eq("id", id).
		Eq("user_id", u.ID).
		Update(r.Context(), map[string]string{"name": form.Name, "notes": form.Notes})
	if err != nil {
		s.renderHome(w, r, client, acc, u, userMessage(err))
		return
	}
	s.redirect(w, r, acc, "/")
}

func (s *Server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	client, acc, u, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	err := client.From("items").
		Eq("id", id).
		Eq("user_id", u.ID).
		Delete(r.Context())
	if err != nil {
		s.renderHome(w, r, client, acc, u, userMessage(err))
		return
	}
	s.redirect(w, r, acc, "/")
}
