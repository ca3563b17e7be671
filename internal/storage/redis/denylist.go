package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "authkeeper:denylist:"

type redisClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

var newRedisClient = func(opts *redis.Options) redisClient {
	return redis.NewClient(opts)
}

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Denylist stores revoked token ids as keys that expire together with the token.
type Denylist struct {
	client redisClient
	now    func() time.Time
}

// New connects to Redis and verifies the connection is alive.
func New(ctx context.Context, cfg Config) (*Denylist, error) {
	client := newRedisClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Denylist{client: client, now: time.Now}, nil
}

func (d *Denylist) Close() error {
	return d.client.Close()
}

// Revoke is a no-op for tokens that have already expired.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistPrefix+tokenID, "1", ttl).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := d.client.Exists(ctx, denylistPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Purge does nothing: Redis expires the keys on its own.
func (d *Denylist) Purge(context.Context, time.Time) (int, error) {
	return 0, nil
}
