package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CategoryAccommodation  Category = "Accommodation"
	CategoryFood           Category = "Food & Dining"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategoryActivities     Category = "Activities"
	CategoryOther          Category = "Other"
)

type (
	// Category classifies an expense. Only the values in Categories are valid.
	Category string

	// Date is a day-granular date, serialized as "2006-01-02".
	Date struct {
		time.Time
	}

	// Trip is a planned travel period with an associated budget. TotalBudget
	// and SpentHome are denominated in the user's home currency.
	Trip struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		CountryCode string `json:"countryCode"`
		StartDate   Date   `json:"startDate"`
		EndDate     Date   `json:"endDate"`
		TotalBudget Money  `json:"totalBudgetCents"`
		SpentHome   Money  `json:"spentHomeCents"`
	}

	// Expense is a single dated spend entry attributed to a trip.
	Expense struct {
		ID          string    `json:"id"`
		TripID      string    `json:"tripId"`
		Description string    `json:"description"`
		Amount      Money     `json:"amountCents"`
		Category    Category  `json:"category"`
		Date        Date      `json:"date"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// Settings is the singleton user-preferences record.
	Settings struct {
		HomeCurrency   string `json:"homeCurrency"`
		UnsplashAPIKey string `json:"unsplashApiKey"`
		Theme          string `json:"theme"`
		Notifications  bool   `json:"notifications"`
	}
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrNotFound marks lookups of ids that do not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports the first business-rule violation found in user input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Categories returns all valid expense categories in display order.
func Categories() []Category {
	return []Category{
		CategoryAccommodation,
		CategoryFood,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryShopping,
		CategoryActivities,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// NewTripID returns a fresh trip identifier.
func NewTripID() string {
	return "trip_" + uuid.NewString()
}

// NewExpenseID returns a fresh expense identifier.
func NewExpenseID() string {
	return "expense_" + uuid.NewString()
}

// Validate checks the trip creation/update rules. The id is part of the record
// identity and must be present; SpentHome is not validated here because it is
// owned by the expense side-effect path, never by user input.
func (t Trip) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return invalid("id", "must be present")
	}
	if strings.TrimSpace(t.Name) == "" {
		return invalid("name", "must be present")
	}
	if strings.TrimSpace(t.CountryCode) == "" {
		return invalid("countryCode", "must be present")
	}
	if t.StartDate.IsZero() {
		return invalid("startDate", "must be present")
	}
	if t.EndDate.IsZero() {
		return invalid("endDate", "must be present")
	}
	if t.EndDate.Before(t.StartDate.Time) {
		return invalid("endDate", "must not be before start date")
	}
	if t.TotalBudget.Cents < 0 {
		return invalid("totalBudget", "must not be negative")
	}
	return nil
}

// Validate checks the expense creation rules, reporting the first failing field.
func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Description)) < 2 {
		return invalid("description", "must be at least 2 characters")
	}
	if e.Amount.Cents <= 0 {
		return invalid("amount", "must be greater than 0")
	}
	if !e.Category.Valid() {
		return invalid("category", "must be a known category")
	}
	if e.Date.IsZero() {
		return invalid("date", "must be present")
	}
	if strings.TrimSpace(e.TripID) == "" {
		return invalid("tripId", "must be present")
	}
	return nil
}

// DefaultSettings is the record applied on first read and on corrupt state.
func DefaultSettings() Settings {
	return Settings{
		HomeCurrency:  "USD",
		Theme:         ThemeLight,
		Notifications: true,
	}
}

// Validate checks user-editable settings fields.
func (s Settings) Validate() error {
	cur := strings.ToUpper(strings.TrimSpace(s.HomeCurrency))
	if len(cur) != 3 {
		return invalid("homeCurrency", "must be a 3-letter ISO 4217 code")
	}
	for _, r := range cur {
		if r < 'A' || r > 'Z' {
			return invalid("homeCurrency", "must be a 3-letter ISO 4217 code")
		}
	}
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return invalid("theme", "must be light or dark")
	}
	return nil
}
