package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/localauth/internal/interfaces"

	goredis "github.com/redis/go-redis/v9"
)

// RedisClient maps each key onto one redis string, optionally under a prefix.
type RedisClient struct {
	client *goredis.Client
	prefix string
}

// NewRedisClient connects to addr and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int, prefix string) (*RedisClient, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisClient{client: client, prefix: prefix}, nil
}

var _ interfaces.KVStore = (*RedisClient)(nil)

func (r *RedisClient) key(k string) string {
	return r.prefix + k
}

func (r *RedisClient) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", r.key(key), err)
	}
	return v, true, nil
}

func (r *RedisClient) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", r.key(key), err)
	}
	return nil
}

func (r *RedisClient) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.key(key), err)
	}
	return nil
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Close(context.Context) error {
	return r.client.Close()
}
