package repository

import (
	"context"
	"fmt"

	"tripbudget/internal/core"
	"tripbudget/internal/storage"
)

// CreateTrip validates and appends a new trip. SpentHome always starts at 0
// regardless of the input; only the expense path may move it afterwards.
func (s *Store) CreateTrip(ctx context.Context, t core.Trip) (core.Trip, error) {
	t.SpentHome = core.Money{}
	if err := t.Validate(); err != nil {
		return core.Trip{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.readTrips(ctx)
	trips = append(trips, t)
	if err := s.writeCollection(ctx, storage.KeyTrips, trips); err != nil {
		return core.Trip{}, fmt.Errorf("persist trips: %w", err)
	}

	s.logger.InfoContext(ctx, "Trip created",
		"trip_id", t.ID,
		"name", t.Name,
		"country", t.CountryCode,
		"budget_cents", t.TotalBudget.Cents)

	s.notifyTripCreated(ctx, t)
	return t, nil
}

// ListTrips returns all trips in insertion order.
func (s *Store) ListTrips(ctx context.Context) []core.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readTrips(ctx)
}

// GetTripByID returns the matching trip or core.ErrNotFound.
func (s *Store) GetTripByID(ctx context.Context, id string) (core.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.readTrips(ctx) {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Trip{}, fmt.Errorf("trip %s: %w", id, core.ErrNotFound)
}

// UpdateTrip replaces the editable fields of the stored trip. The id and
// SpentHome are always restored from the stored record; callers cannot alter
// them through this path.
func (s *Store) UpdateTrip(ctx context.Context, id string, updated core.Trip) (core.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.readTrips(ctx)
	idx := -1
	for i, t := range trips {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Trip{}, fmt.Errorf("trip %s: %w", id, core.ErrNotFound)
	}

	merged := updated
	merged.ID = trips[idx].ID
	merged.SpentHome = trips[idx].SpentHome
	if err := merged.Validate(); err != nil {
		return core.Trip{}, err
	}

	trips[idx] = merged
	if err := s.writeCollection(ctx, storage.KeyTrips, trips); err != nil {
		return core.Trip{}, fmt.Errorf("persist trips: %w", err)
	}

	s.logger.InfoContext(ctx, "Trip updated", "trip_id", id)
	s.notifyTripUpdated(ctx, merged)
	return merged, nil
}

// DeleteTrip removes the trip and, to avoid orphaned records, all expenses
// that reference it. Deleting an unknown id is a no-op, not an error.
func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.readTrips(ctx)
	kept := trips[:0:0]
	for _, t := range trips {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(trips) {
		return nil
	}
	if err := s.writeCollection(ctx, storage.KeyTrips, kept); err != nil {
		return fmt.Errorf("persist trips: %w", err)
	}

	expenses := s.readExpenses(ctx)
	remaining := expenses[:0:0]
	for _, e := range expenses {
		if e.TripID != id {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) != len(expenses) {
		if err := s.writeCollection(ctx, storage.KeyExpenses, remaining); err != nil {
			return fmt.Errorf("persist expenses: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "Trip deleted",
		"trip_id", id,
		"cascaded_expenses", len(expenses)-len(remaining))
	s.notifyTripDeleted(ctx, id)
	return nil
}

func (s *Store) notifyTripCreated(ctx context.Context, t core.Trip) {
	if s.events == nil {
		return
	}
	if err := s.events.TripCreated(ctx, t); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish trip event", "trip_id", t.ID, "error", err)
	}
}

func (s *Store) notifyTripUpdated(ctx context.Context, t core.Trip) {
	if s.events == nil {
		return
	}
	if err := s.events.TripUpdated(ctx, t); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish trip event", "trip_id", t.ID, "error", err)
	}
}

func (s *Store) notifyTripDeleted(ctx context.Context, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.TripDeleted(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish trip event", "trip_id", id, "error", err)
	}
}
