package repository

import (
	"context"
	"fmt"
	"time"

	"tripbudget/internal/core"
	"tripbudget/internal/storage"
)

// AddExpense validates and appends an expense, then increments the owning
// trip's SpentHome by the amount. When the tripId references no trip the
// increment is silently skipped: trips and expenses are not referentially
// enforced, and the expense is still recorded.
func (s *Store) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expenses := s.readExpenses(ctx)
	expenses = append(expenses, e)
	if err := s.writeCollection(ctx, storage.KeyExpenses, expenses); err != nil {
		return core.Expense{}, fmt.Errorf("persist expenses: %w", err)
	}

	if err := s.adjustTripSpend(ctx, e.TripID, e.Amount.Cents); err != nil {
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "Expense added",
		"expense_id", e.ID,
		"trip_id", e.TripID,
		"amount_cents", e.Amount.Cents,
		"category", string(e.Category))

	s.notifyExpenseAdded(ctx, e)
	return e, nil
}

// ListExpenses returns all expenses in insertion order.
func (s *Store) ListExpenses(ctx context.Context) []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readExpenses(ctx)
}

// GetExpensesByTrip filters by the owning trip, preserving insertion order.
func (s *Store) GetExpensesByTrip(ctx context.Context, tripID string) []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Expense
	for _, e := range s.readExpenses(ctx) {
		if e.TripID == tripID {
			out = append(out, e)
		}
	}
	return out
}

// DeleteExpense removes the expense and decrements the owning trip's
// SpentHome by its amount. Deleting an unknown id is a no-op.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses := s.readExpenses(ctx)
	idx := -1
	for i, e := range expenses {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	deleted := expenses[idx]
	expenses = append(expenses[:idx], expenses[idx+1:]...)
	if err := s.writeCollection(ctx, storage.KeyExpenses, expenses); err != nil {
		return fmt.Errorf("persist expenses: %w", err)
	}

	if err := s.adjustTripSpend(ctx, deleted.TripID, -deleted.Amount.Cents); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Expense deleted",
		"expense_id", id,
		"trip_id", deleted.TripID,
		"amount_cents", deleted.Amount.Cents)

	s.notifyExpenseDeleted(ctx, deleted)
	return nil
}

// adjustTripSpend moves the owning trip's SpentHome by delta cents. A missing
// trip is logged and skipped. Caller must hold s.mu.
func (s *Store) adjustTripSpend(ctx context.Context, tripID string, delta int64) error {
	trips := s.readTrips(ctx)
	for i := range trips {
		if trips[i].ID == tripID {
			trips[i].SpentHome.Cents += delta
			if err := s.writeCollection(ctx, storage.KeyTrips, trips); err != nil {
				return fmt.Errorf("persist trips: %w", err)
			}
			return nil
		}
	}
	s.logger.WarnContext(ctx, "Expense references unknown trip, spend not adjusted",
		"trip_id", tripID, "delta_cents", delta)
	return nil
}

func (s *Store) notifyExpenseAdded(ctx context.Context, e core.Expense) {
	if s.events == nil {
		return
	}
	if err := s.events.ExpenseAdded(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish expense event", "expense_id", e.ID, "error", err)
	}
}

func (s *Store) notifyExpenseDeleted(ctx context.Context, e core.Expense) {
	if s.events == nil {
		return
	}
	if err := s.events.ExpenseDeleted(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish expense event", "expense_id", e.ID, "error", err)
	}
}
