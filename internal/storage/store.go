// Package storage provides the local key-value store backing the trip,
// expense and settings collections. Two backends exist: an in-process map
// (default) and a SQLite database.
package storage

import (
	"context"
	"fmt"
)

// Collection keys. Each key holds one JSON-serialized collection; there is no
// versioning or migration logic for the payloads themselves.
const (
	KeyTrips    = "trips"
	KeyExpenses = "expenses"
	KeySettings = "settings"
)

// KV is the port over the persistent key-value store. Writes are synchronous
// and last-write-wins. Read reports ok=false when the key is absent.
type KV interface {
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)
	Write(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open selects a backend by name: "memory" or "sqlite". dbPath is only used
// by the sqlite backend.
func Open(backend, dbPath string) (KV, error) {
	switch backend {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(dbPath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
