package repository

import (
	"context"
	"fmt"

	"staybook/pkg/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Ключи совпадают с кешем Catalog Service
const (
	hotelKeyPrefix = "catalog:hotel:"
	scanBatch      = 100
)

type hotelCache struct {
	client *redis.Client
}

func NewHotelCache(client *redis.Client) HotelCache {
	return &hotelCache{client: client}
}

// Invalidate удаляет карточку отеля, чтобы каталог отдал новый рейтинг
func (c *hotelCache) Invalidate(ctx context.Context, hotelID uuid.UUID) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := c.client.Del(ctx, hotelKeyPrefix+hotelID.String()).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to invalidate hotel %s: %w", hotelID, err)
	}
	return nil
}

// InvalidateAll удаляет все карточки отелей. Ключи сначала собираются через SCAN,
// затем удаляются пачками
func (c *hotelCache) InvalidateAll(ctx context.Context) (int, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	var keys []string
	iter := c.client.Scan(ctx, 0, hotelKeyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return 0, fmt.Errorf("failed to scan hotel keys: %w", err)
	}

	deleted := 0
	for start := 0; start < len(keys); start += scanBatch {
		end := start + scanBatch
		if end > len(keys) {
			end = len(keys)
		}
		n, err := c.client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
			return deleted, fmt.Errorf("failed to delete hotel keys: %w", err)
		}
		deleted += int(n)
	}
	return deleted, nil
}
