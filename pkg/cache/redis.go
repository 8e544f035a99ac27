package cache

import (
	"context"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
)

// Redis wraps the go-redis client. A nil wrapper (no REDIS_ADDR configured)
// is valid; callers fall back to computing values directly.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis at the given address. Returns nil when addr is
// empty so the application can run without a cache.
func NewRedis(ctx context.Context, addr, password string, db int) *Redis {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: unable to reach redis at %s: %v\n", addr, err)
	} else {
		log.Println("Successfully connected to Redis.")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
