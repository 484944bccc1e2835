package view

import (
	"context"
	"io"
	"net/url"

	"tripbudget/internal/core"
)

// ExpensesView lists expenses, optionally scoped to one trip via the
// tripId query parameter, and carries the add-expense form.
type ExpensesView struct {
	deps *Deps
}

func NewExpensesView(deps *Deps) *ExpensesView {
	return &ExpensesView{deps: deps}
}

type expensesData struct {
	Trips          []core.Trip
	Expenses       []core.Expense
	SelectedTripID string
	Categories     []core.Category
	Total          core.Money
}

func (v *ExpensesView) Render(ctx context.Context, w io.Writer, query url.Values) error {
	tripID := query.Get("tripId")

	var expenses []core.Expense
	if tripID != "" {
		expenses = v.deps.Store.GetExpensesByTrip(ctx, tripID)
	} else {
		expenses = v.deps.Store.ListExpenses(ctx)
	}

	var total core.Money
	for _, e := range expenses {
		total.Cents += e.Amount.Cents
	}

	return v.deps.render(w, "expenses", expensesData{
		Trips:          v.deps.Store.ListTrips(ctx),
		Expenses:       expenses,
		SelectedTripID: tripID,
		Categories:     core.Categories(),
		Total:          total,
	})
}
