package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func validTrip() Trip {
	return Trip{
		ID:          "t1",
		Name:        "Paris",
		CountryCode: "FR",
		StartDate:   NewDate(2024, 1, 1),
		EndDate:     NewDate(2024, 1, 5),
		TotalBudget: Money{Cents: 100000},
	}
}

func TestTripValidate(t *testing.T) {
	if err := validTrip().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		field  string
		mutate func(*Trip)
	}{
		{"id", func(tr *Trip) { tr.ID = "" }},
		{"name", func(tr *Trip) { tr.Name = "  " }},
		{"countryCode", func(tr *Trip) { tr.CountryCode = "" }},
		{"startDate", func(tr *Trip) { tr.StartDate = Date{} }},
		{"endDate", func(tr *Trip) { tr.EndDate = Date{} }},
		{"endDate", func(tr *Trip) { tr.EndDate = NewDate(2023, 12, 31) }},
		{"totalBudget", func(tr *Trip) { tr.TotalBudget = Money{Cents: -1} }},
	}
	for i, tc := range cases {
		tr := validTrip()
		tc.mutate(&tr)
		err := tr.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %d expected ValidationError, got %v", i, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("case %d expected field %q, got %q", i, tc.field, verr.Field)
		}
	}

	// Same start and end date is allowed.
	tr := validTrip()
	tr.EndDate = tr.StartDate
	if err := tr.Validate(); err != nil {
		t.Fatalf("single-day trip should validate, got %v", err)
	}
}

func TestExpenseValidateFirstFailingField(t *testing.T) {
	good := Expense{
		ID:          "e1",
		TripID:      "t1",
		Description: "Dinner",
		Amount:      Money{Cents: 25000},
		Category:    CategoryFood,
		Date:        NewDate(2024, 1, 2),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		field  string
		mutate func(*Expense)
	}{
		{"description", func(e *Expense) { e.Description = "x" }},
		{"amount", func(e *Expense) { e.Amount = Money{} }},
		{"category", func(e *Expense) { e.Category = "Snacks" }},
		{"date", func(e *Expense) { e.Date = Date{} }},
		{"tripId", func(e *Expense) { e.TripID = "" }},
	}
	for i, tc := range cases {
		e := good
		tc.mutate(&e)
		err := e.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %d expected ValidationError, got %v", i, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("case %d expected field %q, got %q", i, tc.field, verr.Field)
		}
	}

	// description and amount both bad: description wins as the first rule.
	e := good
	e.Description = ""
	e.Amount = Money{}
	var verr *ValidationError
	if err := e.Validate(); !errors.As(err, &verr) || verr.Field != "description" {
		t.Fatalf("expected description to fail first, got %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults should validate, got %v", err)
	}
	s.HomeCurrency = "EURO"
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for 4-letter currency")
	}
	s.HomeCurrency = "EUR"
	s.Theme = "solarized"
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	type wrap struct {
		D Date `json:"d"`
	}
	b, err := json.Marshal(wrap{D: NewDate(2024, 1, 5)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"d":"2024-01-05"}` {
		t.Fatalf("unexpected encoding: %s", b)
	}
	var w wrap
	if err := json.Unmarshal(b, &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.D.String() != "2024-01-05" {
		t.Fatalf("round trip got %q", w.D.String())
	}
}

func TestIDGenerators(t *testing.T) {
	if NewTripID() == NewTripID() {
		t.Fatal("trip ids must be unique")
	}
	if NewExpenseID()[:8] != "expense_" {
		t.Fatalf("unexpected expense id prefix")
	}
}
