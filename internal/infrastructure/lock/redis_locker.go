package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// unlockScript releases the lock only if the caller still owns it
const unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

const (
	acquireRetryInterval = 50 * time.Millisecond
	acquireTimeout       = 5 * time.Second
)

// RedisConfig holds Redis connection settings for the locker
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisLocker serializes per-aggregate operations across processes using
// SET NX PX with an owner token so only the acquiring caller can release.
type RedisLocker struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisLocker creates a new Redis-backed locker
func NewRedisLocker(cfg RedisConfig, logger *zap.Logger) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisLocker{client: client, logger: logger}, nil
}

// NewRedisLockerWithClient wraps an existing client, for shared pools
func NewRedisLockerWithClient(client *redis.Client, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{client: client, logger: logger}
}

// Acquire blocks until the lock for key is held or the context (bounded by an
// internal timeout) expires. The returned release func is safe to call once.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	redisKey := "lock:" + key

	deadline := time.Now().Add(acquireTimeout)
	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out acquiring lock %s", key)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(acquireRetryInterval):
		}
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := l.client.Eval(ctx, unlockScript, []string{redisKey}, token).Err(); err != nil {
			l.logger.Warn("failed to release lock",
				zap.String("key", key),
				zap.Error(err))
		}
	}
	return release, nil
}

// Close closes the underlying redis client
func (l *RedisLocker) Close() error {
	return l.client.Close()
}
