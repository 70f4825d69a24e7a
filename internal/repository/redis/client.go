package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client. A nil *Cache is valid and turns every
// operation into a no-op, so the server keeps working when Redis is
// not configured or unreachable.
type Cache struct {
	client *redis.Client
}

// Connect dials Redis and verifies the connection. It returns nil
// (not an error) when Redis is unreachable; callers fall back to
// Postgres-only operation.
func Connect(addr, password string) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Warning: could not connect to %s: %v. Falling back to PostgreSQL only.", addr, err)
		client.Close()
		return nil
	}

	log.Println("[REDIS] Connected successfully")
	return &Cache{client: client}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c == nil {
		return nil
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Get returns the cached value, or ("", false) on a miss or when the
// cache is disabled.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
