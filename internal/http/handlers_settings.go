package http

import (
	"errors"
	"net/http"
	"strings"

	"tripbudget/internal/core"
)

// handleSettings serves the settings page on GET and saves preferences on POST.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePage(w, r)
	case http.MethodPost:
		s.saveSettings(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) saveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errorFragment(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	settings := core.Settings{
		HomeCurrency:   strings.ToUpper(sanitizeInput(r.Form.Get("homeCurrency"))),
		UnsplashAPIKey: sanitizeInput(r.Form.Get("unsplashApiKey")),
		Theme:          sanitizeInput(r.Form.Get("theme")),
		Notifications:  r.Form.Get("notifications") != "",
	}

	if _, err := s.store.SaveSettings(r.Context(), settings); err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			errorFragment(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		s.logger.ErrorContext(r.Context(), "Settings save failed", "error", err)
		errorFragment(w, http.StatusInternalServerError, "Could not save settings")
		return
	}

	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
