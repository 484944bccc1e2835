package view

import (
	"context"
	"io"
	"net/url"

	"tripbudget/internal/core"
)

// TripsView lists all trips as budget cards and carries the create form.
type TripsView struct {
	deps *Deps
}

func NewTripsView(deps *Deps) *TripsView {
	return &TripsView{deps: deps}
}

// TripCard is one trip plus its derived budget figures.
type TripCard struct {
	Trip       core.Trip
	Remaining  core.Money
	Percentage float64
	Status     core.Status
}

type tripsData struct {
	Cards      []TripCard
	Categories []core.Category
}

// BuildTripCard derives the progress figures for one trip.
func BuildTripCard(t core.Trip) TripCard {
	return TripCard{
		Trip:       t,
		Remaining:  core.Money{Cents: t.TotalBudget.Cents - t.SpentHome.Cents},
		Percentage: core.Percentage(t.SpentHome, t.TotalBudget),
		Status:     core.BudgetStatus(core.UsagePercent(t.SpentHome, t.TotalBudget)),
	}
}

func (v *TripsView) Render(ctx context.Context, w io.Writer, _ url.Values) error {
	trips := v.deps.Store.ListTrips(ctx)
	cards := make([]TripCard, 0, len(trips))
	for _, t := range trips {
		cards = append(cards, BuildTripCard(t))
	}

	return v.deps.render(w, "trips", tripsData{
		Cards:      cards,
		Categories: core.Categories(),
	})
}
