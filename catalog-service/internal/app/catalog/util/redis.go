package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"staybook/catalog-service/internal/app/catalog/entity"
	"staybook/pkg/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	serviceName    = "catalog-service"
	hotelKeyPrefix = "catalog:hotel"
	roomKeyPrefix  = "catalog:room"
)

type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int, ttl time.Duration) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client, ttl: ttl}, nil
}

func (r *RedisClient) GetHotel(ctx context.Context, id uuid.UUID) (*entity.HotelDetails, error) {
	var hotel entity.HotelDetails
	found, err := r.get(ctx, hotelKeyPrefix, id, &hotel)
	if err != nil || !found {
		return nil, err
	}
	return &hotel, nil
}

func (r *RedisClient) SetHotel(ctx context.Context, hotel *entity.HotelDetails) error {
	return r.set(ctx, hotelKeyPrefix, hotel.ID, hotel)
}

func (r *RedisClient) GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	var room entity.Room
	found, err := r.get(ctx, roomKeyPrefix, id, &room)
	if err != nil || !found {
		return nil, err
	}
	return &room, nil
}

func (r *RedisClient) SetRoom(ctx context.Context, room *entity.Room) error {
	return r.set(ctx, roomKeyPrefix, room.ID, room)
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) get(ctx context.Context, prefix string, id uuid.UUID, out interface{}) (bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, cacheKey(prefix, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, prefix)
			return false, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return false, fmt.Errorf("failed to get %s from cache: %w", prefix, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", prefix, err)
	}

	metrics.RecordCacheHit(serviceName, prefix)
	return true, nil
}

func (r *RedisClient) set(ctx context.Context, prefix string, id uuid.UUID, value interface{}) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", prefix, err)
	}

	if err := r.client.Set(ctx, cacheKey(prefix, id), data, r.ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set %s in cache: %w", prefix, err)
	}

	return nil
}

func cacheKey(prefix string, id uuid.UUID) string {
	return prefix + ":" + id.String()
}
