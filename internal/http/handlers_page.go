package http

import (
	"net/http"

	"tripbudget/internal/router"
)

// handlePage navigates to the requested path and renders the mounted view
// inside the shared layout. Unknown paths resolve to the home page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	v, err := s.router.Navigate(r.URL.Path)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Navigation failed", "path", r.URL.Path, "error", err)
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	s.renderPage(w, r, v)
}

// handleNavBack moves one step back in the navigation history and renders
// the resulting page. At the oldest entry it redirects to the current page.
func (s *Server) handleNavBack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	v, ok := s.router.Back()
	if !ok {
		http.Redirect(w, r, s.router.Current(), http.StatusSeeOther)
		return
	}
	s.renderPage(w, r, v)
}

func (s *Server) handleNavForward(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	v, ok := s.router.Forward()
	if !ok {
		http.Redirect(w, r, s.router.Current(), http.StatusSeeOther)
		return
	}
	s.renderPage(w, r, v)
}

type layoutData struct {
	Title      string
	ActivePath string
	Theme      string
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, v router.View) {
	ctx := r.Context()
	path := s.router.Current()
	settings := s.store.GetSettings(ctx)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := layoutData{
		Title:      s.router.Title(path),
		ActivePath: path,
		Theme:      settings.Theme,
	}
	if err := s.views.Templates.ExecuteTemplate(w, "header", data); err != nil {
		s.logger.ErrorContext(ctx, "Layout header render failed", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	if err := v.Render(ctx, w, r.URL.Query()); err != nil {
		s.logger.ErrorContext(ctx, "Page render failed", "path", path, "error", err)
		_, _ = w.Write([]byte(`<div class="error">Something went wrong rendering this page.</div>`))
	}
	if err := s.views.Templates.ExecuteTemplate(w, "footer", data); err != nil {
		s.logger.ErrorContext(ctx, "Layout footer render failed", "error", err)
	}
}
