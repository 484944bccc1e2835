// Package repository implements the trip, expense and settings repositories
// over the key-value store. All operations run under a single mutex so that
// no two mutations can interleave mid-operation, matching the single-writer
// model the data layout assumes.
package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"tripbudget/internal/core"
	"tripbudget/internal/storage"
)

// Events receives notifications after successful mutations. Implementations
// must tolerate being called from the repository's critical section and
// should not block for long. The AMQP client implements this.
type Events interface {
	TripCreated(ctx context.Context, t core.Trip) error
	TripUpdated(ctx context.Context, t core.Trip) error
	TripDeleted(ctx context.Context, tripID string) error
	ExpenseAdded(ctx context.Context, e core.Expense) error
	ExpenseDeleted(ctx context.Context, e core.Expense) error
}

type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	events Events
	logger *slog.Logger
}

type Option func(*Store)

// WithEvents attaches an optional mutation-event publisher.
func WithEvents(ev Events) Option {
	return func(s *Store) { s.events = ev }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{kv: kv, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// readCollection returns the raw payload stored under key. Absent keys and
// read failures report false: corrupted state is replaced by the default
// rather than surfaced, so the app never crashes on bad stored data.
func (s *Store) readCollection(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := s.kv.Read(ctx, key)
	if err != nil {
		s.logger.ErrorContext(ctx, "Storage read failed, using default",
			"key", key, "error", err)
		return nil, false
	}
	return raw, ok
}

func (s *Store) writeCollection(ctx context.Context, key string, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return s.kv.Write(ctx, key, raw)
}

// Unmarshal fills the destination with whatever it decoded before hitting an
// error, so the typed readers decode into a local and keep it only on full
// success. A partially decoded collection must never leak out.

func (s *Store) readTrips(ctx context.Context) []core.Trip {
	raw, ok := s.readCollection(ctx, storage.KeyTrips)
	if !ok {
		return nil
	}
	var trips []core.Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		s.logger.WarnContext(ctx, "Stored data is malformed, using default",
			"key", storage.KeyTrips, "error", err)
		return nil
	}
	return trips
}

func (s *Store) readExpenses(ctx context.Context) []core.Expense {
	raw, ok := s.readCollection(ctx, storage.KeyExpenses)
	if !ok {
		return nil
	}
	var expenses []core.Expense
	if err := json.Unmarshal(raw, &expenses); err != nil {
		s.logger.WarnContext(ctx, "Stored data is malformed, using default",
			"key", storage.KeyExpenses, "error", err)
		return nil
	}
	return expenses
}
