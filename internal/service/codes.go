package service

import (
	"context" // Redis calls
	"errors"  // redis.Nil check
	"time"    // TTLs

	"github.com/redis/go-redis/v9" // Redis client
)

// CodeStore keeps short-lived verification state outside the process
type CodeStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
	// Incr bumps a counter, starting its window on the first hit, and returns the new value
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCodeStore is the production CodeStore
type RedisCodeStore struct {
	rdb *redis.Client
}

// NewRedisCodeStore wraps a Redis client
func NewRedisCodeStore(rdb *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{rdb: rdb}
}

func (s *RedisCodeStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *RedisCodeStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisCodeStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *RedisCodeStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window) // Window starts with the first hit
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
