package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"walletmap/pkg/platform/sentinel"
)

var redisOpDurationMs = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "walletmap_redis_store_op_duration_ms",
	Help:    "Latency of Redis mapping store operations in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
}, []string{"op"})

// RedisStore is the production mapping store for distributed deployments.
// Redis SETNX provides the single-key conditional write the provisioning
// protocol depends on; keys are written without TTL because mappings never
// expire.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client; the client lifecycle is managed by
// the caller.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	defer observe("get", time.Now())
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) SetNX(ctx context.Context, key, value string) error {
	defer observe("setnx", time.Now())
	stored, err := s.client.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx %q: %w", key, err)
	}
	if !stored {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	defer observe("set", time.Now())
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func observe(op string, start time.Time) {
	redisOpDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}
