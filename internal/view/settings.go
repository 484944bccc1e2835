package view

import (
	"context"
	"io"
	"net/url"

	"tripbudget/internal/core"
)

// SettingsView shows the user preferences form.
type SettingsView struct {
	deps *Deps
}

func NewSettingsView(deps *Deps) *SettingsView {
	return &SettingsView{deps: deps}
}

type settingsData struct {
	Settings   core.Settings
	Currencies []string
	Themes     []string
}

func (v *SettingsView) Render(ctx context.Context, w io.Writer, _ url.Values) error {
	return v.deps.render(w, "settings", settingsData{
		Settings:   v.deps.Store.GetSettings(ctx),
		Currencies: v.deps.Rates.Currencies(ctx),
		Themes:     []string{core.ThemeLight, core.ThemeDark},
	})
}
