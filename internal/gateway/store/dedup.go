package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	dedupopts "github.com/unlistededge/voicegate/pkg/options/dedup"
)

// Deduper tracks processed webhook events so retried deliveries are only
// handled once.
type Deduper interface {
	// Seen marks the event and reports whether it was already processed.
	Seen(ctx context.Context, callID, event string) (bool, error)
	// Close releases resources.
	Close() error
}

// NoopDeduper never reports duplicates. Used when dedup is disabled.
type NoopDeduper struct{}

// Seen always reports the event as unseen.
func (NoopDeduper) Seen(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

// Close is a no-op.
func (NoopDeduper) Close() error {
	return nil
}

// RedisDeduper implements Deduper with Redis SETNX and a TTL.
type RedisDeduper struct {
	client *redis.Client
	opts   *dedupopts.Options
}

// NewRedisDeduper connects to Redis and verifies the connection.
func NewRedisDeduper(ctx context.Context, opts *dedupopts.Options) (*RedisDeduper, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.Database,
		MaxRetries:   opts.MaxRetries,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisDeduper{client: client, opts: opts}, nil
}

// Seen marks call_id+event with SETNX and reports whether the key existed.
func (d *RedisDeduper) Seen(ctx context.Context, callID, event string) (bool, error) {
	key := d.opts.KeyPrefix + callID + ":" + event
	set, err := d.client.SetNX(ctx, key, 1, d.opts.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark event: %w", err)
	}
	return !set, nil
}

// Close closes the Redis connection.
func (d *RedisDeduper) Close() error {
	return d.client.Close()
}

var (
	_ Deduper = (*NoopDeduper)(nil)
	_ Deduper = (*RedisDeduper)(nil)
)
