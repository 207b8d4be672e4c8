package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMiss = errors.New("cache: key not found")
)

// Store persists one snapshot per logical key; a write fully replaces the
// previous snapshot. Implementations return ErrMiss for absent keys and are
// safe for concurrent use. No TTL lives at this layer: expiry is computed
// from Entry metadata when data is read back.
type Store interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Metadata stamps a snapshot with the moment it was written.
type Metadata struct {
	CachedAt time.Time `json:"cached_at"`
}

// Entry wraps a cached payload with its write-time metadata.
type Entry[T any] struct {
	Data     T        `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// Save marshals data into an Entry stamped now and writes it under key.
// A failed save costs nothing but freshness, so callers log the returned
// error and move on rather than propagate it.
func Save[T any](ctx context.Context, s Store, key string, data T) error {
	return SaveAt(ctx, s, key, data, time.Now())
}

// SaveAt is Save with an explicit write timestamp.
func SaveAt[T any](ctx context.Context, s Store, key string, data T, at time.Time) error {
	e := Entry[T]{Data: data, Metadata: Metadata{CachedAt: at.UTC()}}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry %q: %w", key, err)
	}
	if err := s.Put(ctx, key, b); err != nil {
		return fmt.Errorf("put entry %q: %w", key, err)
	}
	return nil
}

// Load reads the entry under key. Absent keys, corrupt payloads, and backend
// failures all come back as ok=false: readers never need to care why a
// snapshot is unavailable.
func Load[T any](ctx context.Context, s Store, key string) (Entry[T], bool) {
	var e Entry[T]
	b, err := s.Get(ctx, key)
	if err != nil {
		return e, false
	}
	if err := json.Unmarshal(b, &e); err != nil {
		return e, false
	}
	// Valid JSON of the wrong shape decodes to a zero entry; the missing
	// timestamp gives it away.
	if e.Metadata.CachedAt.IsZero() {
		return e, false
	}
	return e, true
}
