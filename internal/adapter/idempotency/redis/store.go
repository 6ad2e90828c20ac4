// Package redis implements the idempotency key store on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

// KeyPrefix namespaces idempotency keys in Redis.
const KeyPrefix = "idempotency:"

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string // optional
	DB       int    // optional
}

// NewClient connects to Redis and verifies the connection with PING.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Store implements domain.IdempotencyStore with SETNX locks.
type Store struct {
	client goredis.Cmdable
}

// NewStore creates a Store on top of a Redis client.
func NewStore(client goredis.Cmdable) *Store {
	return &Store{client: client}
}

// Reserve implements domain.IdempotencyStore.
func (s *Store) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, redisKey(key), domain.IdempotencyProcessing, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	return ok, nil
}

// State implements domain.IdempotencyStore.
func (s *Store) State(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, redisKey(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read idempotency key: %w", err)
	}
	return val, nil
}

// Complete implements domain.IdempotencyStore.
func (s *Store) Complete(ctx context.Context, key, result string, ttl time.Duration) error {
	if err := s.client.Set(ctx, redisKey(key), result, ttl).Err(); err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

// Release implements domain.IdempotencyStore.
func (s *Store) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

func redisKey(key string) string {
	return KeyPrefix + key
}

// Ensure Store implements domain.IdempotencyStore at compile time.
var _ domain.IdempotencyStore = (*Store)(nil)
