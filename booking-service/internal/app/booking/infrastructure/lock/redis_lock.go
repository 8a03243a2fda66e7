package lock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"staybook/booking-service/internal/app/booking/infrastructure"
	"staybook/pkg/logger"
	"staybook/pkg/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const serviceName = "booking-service"

// Снимаем блокировку только если она все еще наша: по истечении TTL ключ мог занять другой запрос
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker - блокировка на SET NX PX с токеном владельца
type RedisLocker struct {
	client     *redis.Client
	ttl        time.Duration
	wait       time.Duration
	retryDelay time.Duration
}

func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client:     client,
		ttl:        ttl,
		wait:       wait,
		retryDelay: 25 * time.Millisecond,
	}
}

// Lock ждет освобождения ключа не дольше wait, затем возвращает ErrLockNotAcquired
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	scope := lockScope(key)
	start := time.Now()
	deadline := start.Add(l.wait)

	for {
		timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpLock)
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		timer.ObserveDuration()
		if err != nil {
			metrics.RecordRedisError(serviceName, metrics.RedisOpLock)
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}

		if ok {
			metrics.RecordLockWait(serviceName, scope, time.Since(start))
			return func() { l.release(key, token) }, nil
		}

		if time.Now().After(deadline) {
			metrics.RecordLockTimeout(serviceName, scope)
			return nil, fmt.Errorf("%w: %s", infrastructure.ErrLockNotAcquired, key)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryDelay):
		}
	}
}

// release выполняется и после отмены контекста запроса, поэтому у него свой таймаут
func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpUnlock)
	defer timer.ObserveDuration()

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpUnlock)
		logger.Warn().Err(err).Str("key", key).Msg("Failed to release lock, it will expire by TTL")
	}
}

// lockScope - "lock:booking:user:42" -> "booking"
func lockScope(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 {
		return key
	}
	return parts[1]
}
