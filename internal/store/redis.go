package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis stores values in a Redis instance under an optional key prefix
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to addr and verifies the connection
func NewRedis(ctx context.Context, addr, password string, db int, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, &Error{Op: "ping", Key: addr, Cause: err}
	}
	return &Redis{client: client, prefix: prefix}, nil
}

// Get implements Store
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, &Error{Op: "get", Key: key, Cause: err}
	}
	return data, nil
}

// Set implements Store
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return &Error{Op: "set", Key: key, Cause: err}
	}
	return nil
}

// Delete implements Store
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return &Error{Op: "delete", Key: key, Cause: err}
	}
	return nil
}

// Close releases the underlying connection pool
func (r *Redis) Close() error {
	return r.client.Close()
}
