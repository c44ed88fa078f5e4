package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/moderation"
)

// Redis provides caching of moderation pages in Redis.
type Redis struct {
	cli *redis.Client
	ttl time.Duration
}

var _ moderation.Cache = (*Redis)(nil)

// Connect connects to the Redis server and pings the server to ensure the
// connection is working.
func Connect(ctx context.Context, addr string, ttl time.Duration) (*Redis, error) {
	cli := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{
		cli: cli,
		ttl: ttl,
	}, nil
}

const (
	keyPrefix  = "moderation"
	versionKey = keyPrefix + ":version"
)

// Version returns the current cache version. Pages are keyed under it, so
// bumping the version orphans every page at once and the TTL reclaims them.
func (r *Redis) Version(ctx context.Context) (int64, error) {
	v, err := r.cli.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return v, nil
}

func pageKey(version int64, key string) string {
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, version, key)
}

// Get returns the page stored under key at the given version.
func (r *Redis) Get(ctx context.Context, version int64, key string) ([]byte, bool, error) {
	b, err := r.cli.Get(ctx, pageKey(version, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get: %w", err)
	}
	return b, true, nil
}

// Set stores a page under key at the given version.
func (r *Redis) Set(ctx context.Context, version int64, key string, val []byte) error {
	if err := r.cli.Set(ctx, pageKey(version, key), val, r.ttl).Err(); err != nil {
		return fmt.Errorf("set: %w", err)
	}
	return nil
}

// Invalidate drops every cached page.
func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.cli.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("incr version: %w", err)
	}
	return nil
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.cli.Close()
}
