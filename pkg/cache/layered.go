package cache

import "context"

// LayeredStore is an L1 memory cache over a persistent L2. Writes go through
// to L2 first so the durable copy never lags the fast one; reads prefer L1
// and backfill it from L2.
type LayeredStore struct {
	mem  *MemoryStore
	next Store
}

// NewLayeredStore wraps next with an in-memory first layer.
func NewLayeredStore(next Store) *LayeredStore {
	return &LayeredStore{
		mem:  NewMemoryStore(),
		next: next,
	}
}

func (l *LayeredStore) Put(ctx context.Context, key string, value []byte) error {
	if err := l.next.Put(ctx, key, value); err != nil {
		return err
	}
	_ = l.mem.Put(ctx, key, value)
	return nil
}

func (l *LayeredStore) Get(ctx context.Context, key string) ([]byte, error) {
	if v, err := l.mem.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err := l.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	// Store in memory for next time
	_ = l.mem.Put(ctx, key, v)
	return v, nil
}

func (l *LayeredStore) Delete(ctx context.Context, keys ...string) error {
	_ = l.mem.Delete(ctx, keys...)
	return l.next.Delete(ctx, keys...)
}

func (l *LayeredStore) Keys(ctx context.Context) ([]string, error) {
	return l.next.Keys(ctx)
}

// Close closes both layers.
func (l *LayeredStore) Close() error {
	_ = l.mem.Close()
	return l.next.Close()
}
