package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis, for deployments where several
// dashboard instances want to share one snapshot set. Values are written
// without TTL: freshness is judged at read time from entry metadata.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOption configures the Redis snapshot store.
type RedisOption func(*redisConfig)

type redisConfig struct {
	addr     string
	password string
	db       int
	prefix   string
}

// WithRedisAddr sets the Redis address (host:port).
func WithRedisAddr(addr string) RedisOption {
	return func(c *redisConfig) {
		if addr != "" {
			c.addr = addr
		}
	}
}

// WithRedisPassword sets the Redis password.
func WithRedisPassword(password string) RedisOption {
	return func(c *redisConfig) {
		c.password = password
	}
}

// WithRedisDB selects the Redis database number.
func WithRedisDB(db int) RedisOption {
	return func(c *redisConfig) {
		c.db = db
	}
}

// WithRedisPrefix sets the key namespace. Instances sharing a prefix share
// snapshots.
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *redisConfig) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed snapshot store.
func NewRedisStore(opts ...RedisOption) (*RedisStore, error) {
	cfg := &redisConfig{
		addr:   "localhost:6379",
		prefix: "bitsense",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.addr,
		Password: cfg.password,
		DB:       cfg.db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: cfg.prefix,
	}, nil
}

func (c *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, c.wrapKey(key), value, 0).Err()
}

func (c *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.wrapKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return data, nil
}

func (c *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Unlink(ctx, c.wrapKeys(keys...)...).Err()
}

func (c *RedisStore) Keys(ctx context.Context) ([]string, error) {
	wrapped, err := c.client.Keys(ctx, c.prefix+":*").Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(wrapped))
	for _, k := range wrapped {
		keys = append(keys, c.unwrapKey(k))
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the Redis connection.
func (c *RedisStore) Close() error {
	return c.client.Close()
}

func (c *RedisStore) wrapKey(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

func (c *RedisStore) unwrapKey(key string) string {
	if strings.HasPrefix(key, c.prefix+":") {
		return strings.TrimPrefix(key, c.prefix+":")
	}
	return key
}

func (c *RedisStore) wrapKeys(keys ...string) []string {
	wrapped := make([]string, len(keys))
	for i, key := range keys {
		wrapped[i] = c.wrapKey(key)
	}
	return wrapped
}
