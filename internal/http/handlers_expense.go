package http

import (
	"errors"
	"net/http"
	"net/url"

	"tripbudget/internal/core"
)

// handleExpenses serves the expenses page on GET and adds an expense on POST.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePage(w, r)
	case http.MethodPost:
		s.addExpense(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) addExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errorFragment(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	tripID := sanitizeInput(r.Form.Get("tripId"))
	description := sanitizeInput(r.Form.Get("description"))
	category := core.Category(sanitizeInput(r.Form.Get("category")))

	amountCents, err := core.ParseDecimalToCents(r.Form.Get("amount"), false)
	if err != nil {
		errorFragment(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	date, err := core.ParseDate(r.Form.Get("date"))
	if err != nil {
		errorFragment(w, http.StatusUnprocessableEntity, "invalid date: must be a valid date")
		return
	}

	expense := core.Expense{
		ID:          core.NewExpenseID(),
		TripID:      tripID,
		Description: description,
		Amount:      core.Money{Cents: amountCents},
		Category:    category,
		Date:        date,
	}

	if _, err := s.store.AddExpense(r.Context(), expense); err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			errorFragment(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		s.logger.ErrorContext(r.Context(), "Expense add failed", "error", err)
		errorFragment(w, http.StatusInternalServerError, "Could not save the expense")
		return
	}

	target := "/expenses"
	if tripID != "" {
		target += "?tripId=" + url.QueryEscape(tripID)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleExpenseDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		errorFragment(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	id := sanitizeInput(r.Form.Get("id"))
	if err := s.store.DeleteExpense(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Expense delete failed", "expense_id", id, "error", err)
		errorFragment(w, http.StatusInternalServerError, "Could not delete the expense")
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}
