package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript resets the TTL only while the key still holds our token.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisConfig defines how the distributed lock behaves
type RedisConfig struct {
	// TTL bounds how long a crashed holder can keep the lock. Live holders
	// renew it in the background.
	TTL time.Duration
	// Wait is the longest Acquire blocks before giving up with ErrTimeout
	Wait time.Duration
	// Retry is the polling interval while the key is held elsewhere
	Retry time.Duration
	// KeyPrefix for Redis keys
	KeyPrefix string
}

// Redis is a Locker shared by every API instance pointing at the same Redis.
type Redis struct {
	client *redis.Client
	config RedisConfig
	logger *zap.Logger
}

var _ Locker = (*Redis)(nil)

// NewRedis creates a Redis locker, filling unset config fields with defaults.
func NewRedis(client *redis.Client, config RedisConfig, logger *zap.Logger) *Redis {
	if config.TTL <= 0 {
		config.TTL = 10 * time.Second
	}
	if config.Wait <= 0 {
		config.Wait = 5 * time.Second
	}
	if config.Retry <= 0 {
		config.Retry = 25 * time.Millisecond
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "lock:owner"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: client, config: config, logger: logger}
}

// Acquire implements Locker. While held, the key's TTL is extended every
// third of TTL until release, so TTL only bounds how long a crashed holder
// blocks others.
func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := fmt.Sprintf("%s:%s", r.config.KeyPrefix, key)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, r.config.Wait)
	defer cancel()

	ticker := time.NewTicker(r.config.Retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(waitCtx, redisKey, token, r.config.TTL).Result()
		if err != nil {
			if waitErr := r.waitError(ctx, waitCtx); waitErr != nil {
				return nil, waitErr
			}
			return nil, fmt.Errorf("failed to acquire lock %s: %w", redisKey, err)
		}
		if ok {
			break
		}

		select {
		case <-waitCtx.Done():
			return nil, r.waitError(ctx, waitCtx)
		case <-ticker.C:
		}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go r.keepAlive(redisKey, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			// release must still run when the caller's context is already cancelled
			releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, r.client, []string{redisKey}, token).Err(); err != nil {
				r.logger.Warn("failed to release lock", zap.String("key", redisKey), zap.Error(err))
			}
		})
	}, nil
}

// waitError reports why waiting stopped: the caller's own context error when
// the caller gave up, ErrTimeout when only the configured wait ran out.
func (r *Redis) waitError(callerCtx, waitCtx context.Context) error {
	if err := callerCtx.Err(); err != nil {
		return err
	}
	if waitCtx.Err() != nil {
		return ErrTimeout
	}
	return nil
}

// keepAlive extends the key's TTL while it still holds token. It stops when
// stop is closed or the lock was lost.
func (r *Redis) keepAlive(redisKey, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.config.TTL / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), r.config.TTL/3)
		held, err := renewScript.Run(ctx, r.client, []string{redisKey}, token, r.config.TTL.Milliseconds()).Int()
		cancel()
		if err != nil {
			r.logger.Warn("failed to extend lock", zap.String("key", redisKey), zap.Error(err))
			continue
		}
		if held == 0 {
			r.logger.Warn("lock lost before release", zap.String("key", redisKey))
			return
		}
	}
}
