package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripbudget/internal/core"
	"tripbudget/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(storage.NewMemory())
}

func parisTrip() core.Trip {
	return core.Trip{
		ID:          "t1",
		Name:        "Paris",
		CountryCode: "FR",
		StartDate:   core.NewDate(2024, 1, 1),
		EndDate:     core.NewDate(2024, 1, 5),
		TotalBudget: core.Money{Cents: 100000},
	}
}

func dinnerExpense() core.Expense {
	return core.Expense{
		ID:          "e1",
		TripID:      "t1",
		Description: "Dinner",
		Amount:      core.Money{Cents: 25000},
		Category:    core.CategoryFood,
		Date:        core.NewDate(2024, 1, 2),
	}
}

func TestCreateTripStartsWithZeroSpend(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := parisTrip()
	in.SpentHome = core.Money{Cents: 12345} // must be ignored
	created, err := s.CreateTrip(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.SpentHome.Cents)

	got, err := s.GetTripByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Name)
	assert.Equal(t, "FR", got.CountryCode)
	assert.Equal(t, "2024-01-01", got.StartDate.String())
	assert.Equal(t, "2024-01-05", got.EndDate.String())
	assert.Equal(t, int64(100000), got.TotalBudget.Cents)
	assert.Equal(t, int64(0), got.SpentHome.Cents)
}

func TestCreateTripValidation(t *testing.T) {
	s := newTestStore(t)
	in := parisTrip()
	in.Name = ""
	_, err := s.CreateTrip(context.Background(), in)
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Empty(t, s.ListTrips(context.Background()))
}

func TestListTripsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		tr := parisTrip()
		tr.ID = id
		_, err := s.CreateTrip(ctx, tr)
		require.NoError(t, err)
	}
	trips := s.ListTrips(ctx)
	require.Len(t, trips, 3)
	assert.Equal(t, "a", trips[0].ID)
	assert.Equal(t, "b", trips[1].ID)
	assert.Equal(t, "c", trips[2].ID)
}

func TestGetTripByIDNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTripByID(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateTripPreservesIdentityAndSpend(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.CreateTrip(ctx, parisTrip())
	require.NoError(t, err)
	_, err = s.AddExpense(ctx, dinnerExpense())
	require.NoError(t, err)

	patch := parisTrip()
	patch.ID = "other"
	patch.Name = "Paris Spring"
	patch.SpentHome = core.Money{Cents: 99900}
	updated, err := s.UpdateTrip(ctx, "t1", patch)
	require.NoError(t, err)

	assert.Equal(t, "t1", updated.ID)
	assert.Equal(t, "Paris Spring", updated.Name)
	assert.Equal(t, int64(25000), updated.SpentHome.Cents)

	// "other" must not exist as an id.
	_, err = s.GetTripByID(ctx, "other")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateTripNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpdateTrip(context.Background(), "nope", parisTrip())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestAddExpenseIncrementsSpend(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.CreateTrip(ctx, parisTrip())
	require.NoError(t, err)

	_, err = s.AddExpense(ctx, dinnerExpense())
	require.NoError(t, err)

	got, err := s.GetTripByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(25000), got.SpentHome.Cents)
	assert.InDelta(t, 25.0, core.Percentage(got.SpentHome, got.TotalBudget), 1e-9)
}

func TestAddThenDeleteExpenseRoundTripsSpend(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.CreateTrip(ctx, parisTrip())
	require.NoError(t, err)

	_, err = s.AddExpense(ctx, dinnerExpense())
	require.NoError(t, err)
	require.NoError(t, s.DeleteExpense(ctx, "e1"))

	got, err := s.GetTripByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.SpentHome.Cents)
	assert.Empty(t, s.GetExpensesByTrip(ctx, "t1"))
}

func TestAddExpenseUnknownTripSkipsIncrement(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := dinnerExpense()
	e.TripID = "ghost"
	_, err := s.AddExpense(ctx, e)
	require.NoError(t, err)

	// Expense is recorded even though no trip tracked the spend.
	assert.Len(t, s.GetExpensesByTrip(ctx, "ghost"), 1)
}

func TestAddExpenseValidationFirstField(t *testing.T) {
	s := newTestStore(t)
	e := dinnerExpense()
	e.Description = "x"
	e.Amount = core.Money{}
	_, err := s.AddExpense(context.Background(), e)
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "description", verr.Field)
}

func TestDeleteExpenseAbsentIsNoop(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.DeleteExpense(context.Background(), "missing"))
}

func TestDeleteTripCascadesExpenses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.CreateTrip(ctx, parisTrip())
	require.NoError(t, err)

	other := parisTrip()
	other.ID = "t2"
	_, err = s.CreateTrip(ctx, other)
	require.NoError(t, err)

	_, err = s.AddExpense(ctx, dinnerExpense())
	require.NoError(t, err)
	e2 := dinnerExpense()
	e2.ID = "e2"
	e2.TripID = "t2"
	_, err = s.AddExpense(ctx, e2)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTrip(ctx, "t1"))

	_, err = s.GetTripByID(ctx, "t1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, s.GetExpensesByTrip(ctx, "t1"))
	assert.Len(t, s.GetExpensesByTrip(ctx, "t2"), 1)
	assert.Len(t, s.ListExpenses(ctx), 1)
}

func TestDeleteTripAbsentIsNoop(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.DeleteTrip(context.Background(), "missing"))
}

func TestGetExpensesByTripOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.CreateTrip(ctx, parisTrip())
	require.NoError(t, err)

	for _, id := range []string{"e1", "e2", "e3"} {
		e := dinnerExpense()
		e.ID = id
		_, err := s.AddExpense(ctx, e)
		require.NoError(t, err)
	}
	got := s.GetExpensesByTrip(ctx, "t1")
	require.Len(t, got, 3)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e3", got[2].ID)
}

func TestCorruptCollectionFallsBackToDefault(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Write(ctx, storage.KeyTrips, []byte(`{this is not json`)))
	require.NoError(t, kv.Write(ctx, storage.KeyExpenses, []byte(`42`)))

	s := New(kv)
	assert.Empty(t, s.ListTrips(ctx))
	assert.Empty(t, s.ListExpenses(ctx))

	// The store remains writable after corruption.
	_, err := s.CreateTrip(ctx, parisTrip())
	require.NoError(t, err)
	assert.Len(t, s.ListTrips(ctx), 1)
}

func TestPartiallyCorruptCollectionFallsBackToDefault(t *testing.T) {
	// A payload whose prefix decodes fine before the corrupt tail must not
	// leak the decoded prefix: the whole collection falls back to empty.
	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Write(ctx, storage.KeyTrips, []byte(
		`[{"id":"t1","name":"Paris","countryCode":"FR","startDate":"2024-01-01",`+
			`"endDate":"2024-01-05","totalBudgetCents":100000,"spentHomeCents":0},{"id":42}]`)))
	require.NoError(t, kv.Write(ctx, storage.KeyExpenses, []byte(
		`[{"id":"e1","tripId":"t1","description":"Dinner","amountCents":25000,`+
			`"category":"Food & Dining","date":"2024-01-02"`)))

	s := New(kv)
	assert.Empty(t, s.ListTrips(ctx))
	assert.Empty(t, s.ListExpenses(ctx))
	_, err := s.GetTripByID(ctx, "t1")
	assert.True(t, errors.Is(err, core.ErrNotFound))

	// The next mutation persists only what it read, so no half-decoded
	// records survive the round trip.
	_, err = s.CreateTrip(ctx, parisTrip())
	require.NoError(t, err)
	trips := s.ListTrips(ctx)
	require.Len(t, trips, 1)
	assert.Equal(t, "t1", trips[0].ID)
	assert.Equal(t, "Paris", trips[0].Name)
}

func TestSettingsDefaultsAndRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got := s.GetSettings(ctx)
	assert.Equal(t, "USD", got.HomeCurrency)
	assert.Equal(t, core.ThemeLight, got.Theme)
	assert.True(t, got.Notifications)

	got.HomeCurrency = "EUR"
	got.Theme = core.ThemeDark
	got.Notifications = false
	_, err := s.SaveSettings(ctx, got)
	require.NoError(t, err)

	again := s.GetSettings(ctx)
	assert.Equal(t, "EUR", again.HomeCurrency)
	assert.Equal(t, core.ThemeDark, again.Theme)
	assert.False(t, again.Notifications)
}

func TestSettingsCorruptionSwallowed(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Write(ctx, storage.KeySettings, []byte(`"oops"`)))

	s := New(kv)
	got := s.GetSettings(ctx)
	assert.Equal(t, core.DefaultSettings(), got)
}

func TestSaveSettingsValidation(t *testing.T) {
	s := newTestStore(t)
	bad := core.DefaultSettings()
	bad.HomeCurrency = "dollars"
	_, err := s.SaveSettings(context.Background(), bad)
	var verr *core.ValidationError
	assert.True(t, errors.As(err, &verr))
}

type recordingEvents struct {
	types []string
}

func (r *recordingEvents) TripCreated(_ context.Context, t core.Trip) error {
	r.types = append(r.types, "trip.created")
	return nil
}
func (r *recordingEvents) TripUpdated(_ context.Context, t core.Trip) error {
	r.types = append(r.types, "trip.updated")
	return nil
}
func (r *recordingEvents) TripDeleted(_ context.Context, id string) error {
	r.types = append(r.types, "trip.deleted")
	return nil
}
func (r *recordingEvents) ExpenseAdded(_ context.Context, e core.Expense) error {
	r.types = append(r.types, "expense.added")
	return nil
}
func (r *recordingEvents) ExpenseDeleted(_ context.Context, e core.Expense) error {
	r.types = append(r.types, "expense.deleted")
	return nil
}

func TestMutationEventsPublished(t *testing.T) {
	rec := &recordingEvents{}
	s := New(storage.NewMemory(), WithEvents(rec))
	ctx := context.Background()

	_, err := s.CreateTrip(ctx, parisTrip())
	require.NoError(t, err)
	_, err = s.AddExpense(ctx, dinnerExpense())
	require.NoError(t, err)
	require.NoError(t, s.DeleteExpense(ctx, "e1"))
	require.NoError(t, s.DeleteTrip(ctx, "t1"))

	assert.Equal(t, []string{"trip.created", "expense.added", "expense.deleted", "trip.deleted"}, rec.types)
}
