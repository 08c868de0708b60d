package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStateRepository keeps per-device navigation state in Redis.
type RedisStateRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStateRepository constructs a Redis-backed state repository. A zero ttl keeps keys forever.
func NewRedisStateRepository(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisStateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStateRepository{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// Get returns the raw value stored under key.
func (r *RedisStateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if r.client == nil {
		return "", false, nil
	}
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites the value stored under key.
func (r *RedisStateRepository) Set(ctx context.Context, key, value string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Clear removes key. Missing keys are not an error.
func (r *RedisStateRepository) Clear(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (r *RedisStateRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection if present.
func (r *RedisStateRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// MemoryStateRepository is an in-process state store for tests and single-node development.
type MemoryStateRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStateRepository constructs an empty in-memory store.
func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryStateRepository) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set overwrites the value stored under key.
func (m *MemoryStateRepository) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Clear removes key.
func (m *MemoryStateRepository) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Ping always succeeds.
func (m *MemoryStateRepository) Ping(context.Context) error {
	return nil
}
