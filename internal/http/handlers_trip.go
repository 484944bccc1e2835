package http

import (
	"errors"
	"net/http"

	"tripbudget/internal/core"
)

// handleTrips serves the trips page on GET and creates a trip on POST.
func (s *Server) handleTrips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePage(w, r)
	case http.MethodPost:
		s.createTrip(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// tripFromForm builds a trip from the submitted form fields. The returned
// trip has no ID; callers assign one (create) or carry the stored one (update).
func tripFromForm(r *http.Request) (core.Trip, error) {
	name := sanitizeInput(r.Form.Get("name"))
	countryCode := sanitizeInput(r.Form.Get("countryCode"))

	startDate, err := core.ParseDate(r.Form.Get("startDate"))
	if err != nil {
		return core.Trip{}, &core.ValidationError{Field: "startDate", Reason: "must be a valid date"}
	}
	endDate, err := core.ParseDate(r.Form.Get("endDate"))
	if err != nil {
		return core.Trip{}, &core.ValidationError{Field: "endDate", Reason: "must be a valid date"}
	}
	budgetCents, err := core.ParseDecimalToCents(r.Form.Get("totalBudget"), true)
	if err != nil {
		return core.Trip{}, err
	}

	return core.Trip{
		Name:        name,
		CountryCode: countryCode,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalBudget: core.Money{Cents: budgetCents},
	}, nil
}

func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errorFragment(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := tripFromForm(r)
	if err != nil {
		errorFragment(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	trip.ID = core.NewTripID()

	if _, err := s.store.CreateTrip(r.Context(), trip); err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			errorFragment(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		s.logger.ErrorContext(r.Context(), "Trip create failed", "error", err)
		errorFragment(w, http.StatusInternalServerError, "Could not save the trip")
		return
	}

	http.Redirect(w, r, "/trips", http.StatusSeeOther)
}

func (s *Server) handleTripUpdate(w http.ResponseWriter, r *http.Request) {
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
	trip, err := tripFromForm(r)
	if err != nil {
		errorFragment(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	trip.ID = id

	if _, err := s.store.UpdateTrip(r.Context(), id, trip); err != nil {
		var verr *core.ValidationError
		switch {
		case errors.Is(err, core.ErrNotFound):
			errorFragment(w, http.StatusNotFound, "Trip not found")
		case errors.As(err, &verr):
			errorFragment(w, http.StatusUnprocessableEntity, verr.Error())
		default:
			s.logger.ErrorContext(r.Context(), "Trip update failed", "trip_id", id, "error", err)
			errorFragment(w, http.StatusInternalServerError, "Could not save the trip")
		}
		return
	}

	http.Redirect(w, r, "/trips", http.StatusSeeOther)
}

func (s *Server) handleTripDelete(w http.ResponseWriter, r *http.Request) {
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
	if err := s.store.DeleteTrip(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Trip delete failed", "trip_id", id, "error", err)
		errorFragment(w, http.StatusInternalServerError, "Could not delete the trip")
		return
	}

	http.Redirect(w, r, "/trips", http.StatusSeeOther)
}
