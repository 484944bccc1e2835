package http

import (
	"errors"
	"net/http"

	"tripbudget/internal/core"
	"tripbudget/internal/travelapi"
)

// handleDestinationDetail renders the country detail fragment for the code
// in the query string. The optional name parameter improves the photo search.
func (s *Server) handleDestinationDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	code := sanitizeInput(r.URL.Query().Get("code"))
	name := sanitizeInput(r.URL.Query().Get("name"))
	if code == "" {
		errorFragment(w, http.StatusBadRequest, "Missing country code")
		return
	}

	dest, err := s.destinations.Detail(r.Context(), code, name)
	if err != nil {
		var nerr *travelapi.NetworkError
		switch {
		case errors.Is(err, core.ErrNotFound):
			errorFragment(w, http.StatusNotFound, "No country found for code "+code)
		case errors.As(err, &nerr):
			s.logger.WarnContext(r.Context(), "Country detail failed", "code", code, "error", err)
			errorFragment(w, http.StatusBadGateway, "Country data is unavailable right now. Try again later.")
		default:
			s.logger.ErrorContext(r.Context(), "Country detail failed", "code", code, "error", err)
			errorFragment(w, http.StatusInternalServerError, "Could not load country details")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.views.Templates.ExecuteTemplate(w, "destination_detail", dest); err != nil {
		s.logger.ErrorContext(r.Context(), "Destination detail render failed", "error", err)
	}
}
