package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_audit/internal/adapters/observability"
)

// keyPrefix namespaces every entry so a shared Redis can host other
// tenants next to the audit read models.
const keyPrefix = "hotel_audit:"

// Cache stores the session read models (summary, section groupings) as
// JSON values with a TTL; mutations on the write side delete them.
type Cache struct {
	rdb *redis.Client
}

func New(addr, pass string, db int) *Cache {
	return &Cache{rdb: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return c.rdb.Set(ctx, keyPrefix+key, b, ttl).Err()
}

func (c *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	return c.rdb.Del(ctx, keyPrefix+key).Err()
}
