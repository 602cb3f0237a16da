package cache

import (
	"context"
	"errors"
	"fmt"
	"load-ranking-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const carrierKeyPrefix = "carrier:"

// RedisCarrierCache is a Redis-backed carrier cache for deployments that
// share registry lookups across restarts. Entries expire after TTL; a zero
// TTL means no expiry.
type RedisCarrierCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCarrierCache(client *redis.Client, ttl time.Duration) *RedisCarrierCache {
	return &RedisCarrierCache{Client: client, TTL: ttl}
}

func (c *RedisCarrierCache) Get(ctx context.Context, dotNumber string) (*domain.CarrierRecord, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("carrier cache: redis client is nil")
	}

	payload, err := c.Client.Get(ctx, carrierKeyPrefix+dotNumber).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get carrier cache dot=%q: %w", dotNumber, err)
	}

	rec, err := decodeCarrierPayload(payload)
	if err != nil {
		return nil, false, fmt.Errorf("get carrier cache dot=%q: %w", dotNumber, err)
	}
	return rec, true, nil
}

func (c *RedisCarrierCache) Put(ctx context.Context, dotNumber string, rec *domain.CarrierRecord) error {
	if c.Client == nil {
		return errors.New("carrier cache: redis client is nil")
	}

	payload, err := encodeCarrierPayload(rec)
	if err != nil {
		return fmt.Errorf("insert carrier cache dot=%q: %w", dotNumber, err)
	}

	if err := c.Client.Set(ctx, carrierKeyPrefix+dotNumber, payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert carrier cache dot=%q: %w", dotNumber, err)
	}
	return nil
}

func (c *RedisCarrierCache) Clear(ctx context.Context) error {
	if c.Client == nil {
		return errors.New("carrier cache: redis client is nil")
	}

	iter := c.Client.Scan(ctx, 0, carrierKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("clear carrier cache key=%q: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("clear carrier cache: scan: %w", err)
	}
	return nil
}
