package state

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rulego/streamwindow/streamerr"
)

// ErrRedisKeyNotFound is returned by a RedisClient's Get when no value is
// stored at the key.
var ErrRedisKeyNotFound = errors.New("state: redis key not found")

// RedisClient abstracts the minimal surface RedisBackend needs, mirroring
// etalazz-vsa's persistence.RedisEvaler: a narrow interface over the real
// client so tests can fake it without a live server.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// goRedisClient adapts a redis.Cmdable (github.com/redis/go-redis/v9) to
// RedisClient.
type goRedisClient struct {
	cmdable redis.Cmdable
}

// NewGoRedisClient wraps a redis.Cmdable — a *redis.Client or
// *redis.ClusterClient — as a RedisClient.
func NewGoRedisClient(c redis.Cmdable) RedisClient {
	return &goRedisClient{cmdable: c}
}

func (g *goRedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := g.cmdable.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrRedisKeyNotFound
	}
	return val, err
}

func (g *goRedisClient) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return g.cmdable.Set(ctx, key, value, ttl).Err()
}

// RedisBackend persists state as a single encoded blob at key, surviving
// restarts of the host process — unlike MemoryBackend. Unlike
// etalazz-vsa's CommitBatch, which guards concurrent commits with a
// SETNX-marked Lua script, a single GET/SET round trip is enough here:
// window state has exactly one writer per partition, never concurrent
// commits to the same key.
type RedisBackend[T any] struct {
	client RedisClient
	key    string
	codec  Codec[T]
}

// NewRedisBackend returns a Backend[T] that reads/writes key through
// client, encoding with codec.
func NewRedisBackend[T any](client RedisClient, key string, codec Codec[T]) *RedisBackend[T] {
	return &RedisBackend[T]{client: client, key: key, codec: codec}
}

func (b *RedisBackend[T]) Save(val T) error {
	raw, err := b.codec.Encode(val)
	if err != nil {
		return streamerr.Wrap(streamerr.KindStateCodec, "encode state", err)
	}
	if err := b.client.Set(context.Background(), b.key, string(raw), 0); err != nil {
		return streamerr.Wrap(streamerr.KindStateCodec, "redis set", err)
	}
	return nil
}

func (b *RedisBackend[T]) Restore() (T, error) {
	var zero T
	raw, err := b.client.Get(context.Background(), b.key)
	if errors.Is(err, ErrRedisKeyNotFound) {
		return zero, streamerr.New(streamerr.KindStateNotInitialized, "no state persisted at key "+b.key)
	}
	if err != nil {
		return zero, streamerr.Wrap(streamerr.KindStateCodec, "redis get", err)
	}
	val, err := b.codec.Decode([]byte(raw))
	if err != nil {
		return zero, streamerr.Wrap(streamerr.KindStateCodec, "decode state", err)
	}
	return val, nil
}

var _ Backend[int] = (*RedisBackend[int])(nil)
