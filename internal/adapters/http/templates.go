package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/aretw0/curio/pkg/domain"
	"github.com/aretw0/curio/pkg/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// pageData feeds every template; pages read the fields they need.
type pageData struct {
	Error  string
	Notice string
	Email  string
	User   domain.User
	Items  []domain.Item
	Edit   *domain.Item
}

// render flushes the accumulated Set-Cookie headers and writes the
// page. The template executes into a buffer first so a render failure
// can still produce a clean 500.
func (s *Server) render(w http.ResponseWriter, acc *session.Accumulator, status int, page string, data pageData) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, page, data); err != nil {
		s.logger.Error("template render failed", "page", page, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	acc.Apply(w.Header())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// redirect flushes the accumulated Set-Cookie headers before sending
// the browser elsewhere, so token updates survive the hop.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, acc *session.Accumulator, path string) {
	acc.Apply(w.Header())
	http.Redirect(w, r, path, http.StatusSeeOther)
}
