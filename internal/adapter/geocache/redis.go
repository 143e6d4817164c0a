package geocache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lodestar-geo/place-search-service/internal/domain"
)

// RedisStore keeps geocode results in Redis with a TTL, so a shared cache
// survives restarts and is bounded by expiry instead of entry count.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. A non-positive TTL disables expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(key string) string {
	return "geocode:" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (domain.PlaceResult, bool, error) {
	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PlaceResult{}, false, nil
	}
	if err != nil {
		return domain.PlaceResult{}, false, fmt.Errorf("redis get: %w", err)
	}

	var result domain.PlaceResult
	if err := json.Unmarshal(data, &result); err != nil {
		return domain.PlaceResult{}, false, fmt.Errorf("decode cached result: %w", err)
	}
	return result, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, result domain.PlaceResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
