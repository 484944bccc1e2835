package view

import (
	"context"
	"io"
	"net/url"

	"golang.org/x/sync/errgroup"

	"tripbudget/internal/travelapi"
)

// DestinationsView explores countries: search by name and a detail page
// combining country metadata with a destination photo.
type DestinationsView struct {
	deps *Deps
}

func NewDestinationsView(deps *Deps) *DestinationsView {
	return &DestinationsView{deps: deps}
}

// Destination is a country with its display photo.
type Destination struct {
	Country  travelapi.Country
	ImageURL string
}

type destinationsData struct {
	Query   string
	Results []travelapi.Country
	Err     string
}

func (v *DestinationsView) Render(ctx context.Context, w io.Writer, query url.Values) error {
	term := query.Get("q")

	data := destinationsData{Query: term}
	if term != "" {
		results, err := v.deps.Countries.Search(ctx, term)
		if err != nil {
			v.deps.Logger.WarnContext(ctx, "Country search failed", "term", term, "error", err)
			data.Err = "Country lookup is unavailable right now. Try again later."
		} else {
			data.Results = results
		}
	}
	return v.deps.render(w, "destinations", data)
}

// Detail loads one country and its photo concurrently. name is the display
// name to search photos for; when empty the code is used. The photo lookup
// cannot fail (it falls back to a placeholder), so only the country fetch
// can abort the pair.
func (v *DestinationsView) Detail(ctx context.Context, code, name string) (Destination, error) {
	if name == "" {
		name = code
	}
	var dest Destination

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		country, err := v.deps.Countries.ByCode(gctx, code)
		if err != nil {
			return err
		}
		dest.Country = country
		return nil
	})
	g.Go(func() error {
		dest.ImageURL = v.deps.Images.DestinationImage(gctx, name)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Destination{}, err
	}
	return dest, nil
}
