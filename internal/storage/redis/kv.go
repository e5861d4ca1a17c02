// Package redis provides a redis-backed storage driver.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmorelli/confab/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "confab:"

// KV implements storage.KV over redis.
type KV struct {
	rdb *redis.Client
}

// Open connects to redis and verifies the connection.
func Open(ctx context.Context, cfg config.RedisConfig) (*KV, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &KV{rdb: rdb}, nil
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := k.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, true, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := k.rdb.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	if err := k.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (k *KV) Close() error {
	return k.rdb.Close()
}
