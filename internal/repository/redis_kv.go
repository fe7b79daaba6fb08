package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores documents as plain Redis strings without expiry.
type RedisKV struct {
	rdb *redis.Client
}

// NewRedisKV creates a new RedisKV.
func NewRedisKV(rdb *redis.Client) *RedisKV {
	return &RedisKV{rdb: rdb}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return b, err
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, key, value, 0).Err()
}
