package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

type quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory":  NewMemoryStore(),
		"sqlite":  newTestSQLite(t),
		"layered": NewLayeredStore(newTestSQLite(t)),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			in := quote{Symbol: "BTC", Price: 67123.45}
			if err := Save(ctx, store, "price_data", in); err != nil {
				t.Fatalf("Save: %v", err)
			}

			entry, ok := Load[quote](ctx, store, "price_data")
			if !ok {
				t.Fatalf("Load: expected entry")
			}
			if entry.Data != in {
				t.Fatalf("got %+v, want %+v", entry.Data, in)
			}
			if entry.Metadata.CachedAt.IsZero() {
				t.Fatalf("expected cached_at to be stamped")
			}
		})
	}
}

func TestLoadAbsentKey(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok := Load[quote](ctx, store, "nope"); ok {
				t.Fatalf("expected absent")
			}
		})
	}
}

func TestOverwriteReplacesEntry(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			first := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
			second := first.Add(30 * time.Second)

			if err := SaveAt(ctx, store, "price_data", quote{Symbol: "BTC", Price: 1}, first); err != nil {
				t.Fatalf("SaveAt: %v", err)
			}
			if err := SaveAt(ctx, store, "price_data", quote{Symbol: "BTC", Price: 2}, second); err != nil {
				t.Fatalf("SaveAt: %v", err)
			}

			entry, ok := Load[quote](ctx, store, "price_data")
			if !ok {
				t.Fatalf("expected entry")
			}
			if entry.Data.Price != 2 {
				t.Fatalf("expected overwrite, got price %v", entry.Data.Price)
			}
			if !entry.Metadata.CachedAt.Equal(second) {
				t.Fatalf("expected cached_at %v, got %v", second, entry.Metadata.CachedAt)
			}
		})
	}
}

func TestLoadAbsorbsCorruptPayloads(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Put(ctx, "statistics", []byte("{not json")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if _, ok := Load[quote](ctx, store, "statistics"); ok {
				t.Fatalf("corrupt payload must read as absent")
			}

			// Valid JSON of the wrong shape is just as absent.
			if err := store.Put(ctx, "statistics", []byte(`{"foo": 1}`)); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if _, ok := Load[quote](ctx, store, "statistics"); ok {
				t.Fatalf("wrong-shape payload must read as absent")
			}
		})
	}
}

func TestDeleteAndKeys(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := Save(ctx, store, "sentiment_data", quote{Symbol: "BTC"}); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := Save(ctx, store, "price_data", quote{Symbol: "BTC"}); err != nil {
				t.Fatalf("Save: %v", err)
			}

			keys, err := store.Keys(ctx)
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			if len(keys) != 2 || keys[0] != "price_data" || keys[1] != "sentiment_data" {
				t.Fatalf("unexpected keys %v", keys)
			}

			if err := store.Delete(ctx, "price_data"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok := Load[quote](ctx, store, "price_data"); ok {
				t.Fatalf("expected deleted")
			}
			if _, ok := Load[quote](ctx, store, "sentiment_data"); !ok {
				t.Fatalf("expected other key untouched")
			}
		})
	}
}

func TestLayeredServesFromL1AfterBackfill(t *testing.T) {
	ctx := context.Background()

	next := newTestSQLite(t)
	layered := NewLayeredStore(next)

	if err := next.Put(ctx, "recent_predictions", []byte(`{"data":{"symbol":"BTC","price":3},"metadata":{"cached_at":"2026-08-25T10:00:00Z"}}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// First read backfills L1 from L2.
	if _, ok := Load[quote](ctx, layered, "recent_predictions"); !ok {
		t.Fatalf("expected entry via L2")
	}

	// Drop the key behind the layered store's back; L1 still serves it.
	if err := next.Delete(ctx, "recent_predictions"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := Load[quote](ctx, layered, "recent_predictions"); !ok {
		t.Fatalf("expected entry via L1 backfill")
	}
}
