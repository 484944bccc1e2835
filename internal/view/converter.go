package view

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync/atomic"
)

// ErrSuperseded is returned when a conversion finished after the user
// started a newer one or navigated away; its result must be discarded.
var ErrSuperseded = errors.New("conversion superseded")

// ConverterView is the currency converter. Unlike the other pages it keeps
// state across requests: a generation counter that invalidates in-flight
// conversions when a newer request starts or the page is left. The router
// factory must hand out a single shared instance.
type ConverterView struct {
	deps *Deps
	gen  atomic.Uint64
}

func NewConverterView(deps *Deps) *ConverterView {
	return &ConverterView{deps: deps}
}

type converterData struct {
	Currencies   []string
	HomeCurrency string
	Configured   bool
}

func (v *ConverterView) Render(ctx context.Context, w io.Writer, _ url.Values) error {
	settings := v.deps.Store.GetSettings(ctx)

	return v.deps.render(w, "converter", converterData{
		Currencies:   v.deps.Rates.Currencies(ctx),
		HomeCurrency: settings.HomeCurrency,
		Configured:   v.deps.Rates.Configured(),
	})
}

// Convert performs one conversion. If a newer conversion started or the view
// was torn down while the rate lookup was in flight, the stale result is
// dropped and ErrSuperseded is returned.
func (v *ConverterView) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	gen := v.gen.Add(1)

	result, err := v.deps.Rates.Convert(ctx, amount, from, to)
	if err != nil {
		return 0, err
	}
	if v.gen.Load() != gen {
		return 0, ErrSuperseded
	}
	return result, nil
}

// Teardown invalidates any conversion still in flight.
func (v *ConverterView) Teardown() {
	v.gen.Add(1)
}
