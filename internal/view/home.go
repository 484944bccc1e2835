package view

import (
	"context"
	"io"
	"net/url"

	"tripbudget/internal/core"
)

// HomeView is the dashboard: headline totals and the active trips.
type HomeView struct {
	deps *Deps
}

func NewHomeView(deps *Deps) *HomeView {
	return &HomeView{deps: deps}
}

type homeData struct {
	TripCount    int
	ExpenseCount int
	TotalBudget  core.Money
	TotalSpent   core.Money
	TotalSaved   core.Money
}

func (v *HomeView) Render(ctx context.Context, w io.Writer, _ url.Values) error {
	trips := v.deps.Store.ListTrips(ctx)
	expenses := v.deps.Store.ListExpenses(ctx)

	return v.deps.render(w, "home", homeData{
		TripCount:    len(trips),
		ExpenseCount: len(expenses),
		TotalBudget:  core.TotalBudget(trips),
		TotalSpent:   core.TotalSpent(trips),
		TotalSaved:   core.TotalSaved(trips),
	})
}
