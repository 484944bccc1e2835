package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tripbudget/internal/core"
	"tripbudget/internal/storage"
)

// GetSettings returns the singleton settings record, applying defaults when
// the key is absent or its payload is malformed.
func (s *Store) GetSettings(ctx context.Context) core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readSettings(ctx)
}

// SaveSettings validates and persists the settings record, returning the
// stored value.
func (s *Store) SaveSettings(ctx context.Context, settings core.Settings) (core.Settings, error) {
	if err := settings.Validate(); err != nil {
		return core.Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeCollection(ctx, storage.KeySettings, settings); err != nil {
		return core.Settings{}, fmt.Errorf("persist settings: %w", err)
	}

	s.logger.InfoContext(ctx, "Settings saved",
		"home_currency", settings.HomeCurrency,
		"theme", settings.Theme,
		"notifications", settings.Notifications)
	return settings, nil
}

// readSettings applies the default record on any read problem. Unlike the
// list collections a zero-value Settings is not a usable default, so decoding
// starts from DefaultSettings and a partial record keeps the missing fields'
// defaults. Caller must hold s.mu.
func (s *Store) readSettings(ctx context.Context) core.Settings {
	settings := core.DefaultSettings()

	raw, ok := s.readCollection(ctx, storage.KeySettings)
	if !ok {
		return settings
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logger.WarnContext(ctx, "Stored settings are malformed, using defaults", "error", err)
		return core.DefaultSettings()
	}
	if settings.Validate() != nil {
		s.logger.WarnContext(ctx, "Stored settings fail validation, using defaults")
		return core.DefaultSettings()
	}
	return settings
}
