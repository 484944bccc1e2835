package view

import (
	"context"
	"io"
	"net/url"
	"sort"

	"tripbudget/internal/core"
)

const (
	topCategoryCount = 5
	recentTripCount  = 5
)

// ReportsView aggregates spending across all trips: headline totals,
// per-trip budget usage, the largest spending categories and the most
// recently started trips.
type ReportsView struct {
	deps *Deps
}

func NewReportsView(deps *Deps) *ReportsView {
	return &ReportsView{deps: deps}
}

type reportsData struct {
	TripCount     int
	ExpenseCount  int
	TotalBudget   core.Money
	TotalSpent    core.Money
	TotalSaved    core.Money
	AverageSpent  core.Money
	BudgetRows    []TripCard
	TopCategories []core.CategoryTotal
	RecentTrips   []core.Trip
}

func (v *ReportsView) Render(ctx context.Context, w io.Writer, _ url.Values) error {
	trips := v.deps.Store.ListTrips(ctx)
	expenses := v.deps.Store.ListExpenses(ctx)

	spent := core.TotalSpent(trips)
	var average core.Money
	if len(trips) > 0 {
		average = core.Money{Cents: spent.Cents / int64(len(trips))}
	}

	rows := make([]TripCard, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, BuildTripCard(t))
	}

	recent := append([]core.Trip(nil), trips...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[j].StartDate.Before(recent[i].StartDate.Time)
	})
	if len(recent) > recentTripCount {
		recent = recent[:recentTripCount]
	}

	return v.deps.render(w, "reports", reportsData{
		TripCount:     len(trips),
		ExpenseCount:  len(expenses),
		TotalBudget:   core.TotalBudget(trips),
		TotalSpent:    spent,
		TotalSaved:    core.TotalSaved(trips),
		AverageSpent:  average,
		BudgetRows:    rows,
		TopCategories: core.TopCategories(core.CategoryBreakdown(expenses), topCategoryCount),
		RecentTrips:   recent,
	})
}
