package dash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/midbel/barchart/internal/logging"
	"github.com/redis/go-redis/v9"
)

const snapshotKey = "snapshot"

var ErrCache = errors.New("cache failure")

type Cache interface {
	Set(context.Context, string, []byte, time.Duration) error
	// Take returns the value stored under the key and removes it.
	Take(context.Context, string) ([]byte, bool, error)
	Close() error
}

type entry struct {
	value   []byte
	expires time.Time
}

type MemoryCache struct {
	mu     sync.Mutex
	values map[string]entry
	now    func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		values: make(map[string]entry),
		now:    time.Now,
	}
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		value: append([]byte(nil), value...),
	}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.values[key] = e
	return nil
}

func (c *MemoryCache) Take(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.values[key]
	if !ok {
		return nil, false, nil
	}
	delete(c.values, key)
	if !e.expires.IsZero() && c.now().After(e.expires) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) Close() error {
	return nil
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Timeout  time.Duration
}

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.Timeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrCache, opts.Addr, err)
	}
	return NewRedisCacheFromClient(client, opts.Prefix), nil
}

func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	return nil
}

func (c *RedisCache) Take(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.GetDel(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %w", ErrCache, err)
	}
	return value, true, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Transfer hands the snapshot fetched by a prerender pass over to the next
// render pass, which consumes it once instead of asking the source again.
type Transfer struct {
	Source Source
	Cache  Cache
	TTL    time.Duration
}

func (t Transfer) Prerender(ctx context.Context) (*Snapshot, error) {
	snap, err := t.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := t.Cache.Set(ctx, snapshotKey, data, t.TTL); err != nil {
		return nil, err
	}
	return snap, nil
}

// Fetch returns the transferred snapshot when one is pending and falls back
// to the source otherwise.
func (t Transfer) Fetch(ctx context.Context) (*Snapshot, error) {
	snap, ok, err := t.Consume(ctx)
	if err != nil {
		logging.Warn().With(logging.ErrorField(err)).Msg("transfer cache unavailable")
	}
	logging.Debug().With(logging.Cached(ok)).Msg("snapshot lookup")
	if ok {
		return snap, nil
	}
	return t.Source.Fetch(ctx)
}

func (t Transfer) Consume(ctx context.Context) (*Snapshot, bool, error) {
	data, ok, err := t.Cache.Take(ctx, snapshotKey)
	if err != nil || !ok {
		return nil, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, true, nil
}
