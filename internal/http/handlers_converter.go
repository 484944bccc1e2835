package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tripbudget/internal/travelapi"
	"tripbudget/internal/view"
)

type conversionResult struct {
	Amount    float64
	From      string
	To        string
	Converted float64
}

// handleConvert performs one currency conversion and renders the result
// fragment. A conversion that was superseded by a newer one (or by leaving
// the page) returns 204 so the stale result is never shown.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		errorFragment(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(r.Form.Get("amount")), 64)
	if err != nil || amount < 0 {
		errorFragment(w, http.StatusUnprocessableEntity, "Amount must be a non-negative number")
		return
	}
	from := strings.ToUpper(sanitizeInput(r.Form.Get("from")))
	to := strings.ToUpper(sanitizeInput(r.Form.Get("to")))
	if len(from) != 3 || len(to) != 3 {
		errorFragment(w, http.StatusUnprocessableEntity, "Currencies must be 3-letter codes")
		return
	}

	converted, err := s.converter.Convert(r.Context(), amount, from, to)
	if err != nil {
		var nerr *travelapi.NetworkError
		switch {
		case errors.Is(err, view.ErrSuperseded):
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, travelapi.ErrNotConfigured):
			errorFragment(w, http.StatusOK, "Conversion requires an exchange rate API key. Add one in Settings.")
		case errors.As(err, &nerr):
			s.logger.WarnContext(r.Context(), "Conversion failed", "from", from, "to", to, "error", err)
			errorFragment(w, http.StatusBadGateway, "Exchange rates are unavailable right now. Try again later.")
		default:
			errorFragment(w, http.StatusUnprocessableEntity, err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := conversionResult{Amount: amount, From: from, To: to, Converted: converted}
	if err := s.views.Templates.ExecuteTemplate(w, "conversion_result", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Conversion result render failed", "error", err)
	}
}
