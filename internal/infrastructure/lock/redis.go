package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds pair locks across service instances with SET NX PX.
type RedisLocker struct {
	client     *redis.Client
	ttl        time.Duration
	retryDelay time.Duration
}

func NewRedisLocker(client *redis.Client, ttl, retryDelay time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if retryDelay <= 0 {
		retryDelay = 25 * time.Millisecond
	}
	return &RedisLocker{client: client, ttl: ttl, retryDelay: retryDelay}
}

func (l *RedisLocker) LockPair(ctx context.Context, a, b int) (func(), error) {
	key := pairKey(a, b)
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire pair lock: %w", err)
		}
		if ok {
			return func() {
				// Released with a fresh context so a cancelled request still frees the pair.
				releaseCtx, done := context.WithTimeout(context.Background(), time.Second)
				defer done()
				_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
			}, nil
		}

		select {
		case <-time.After(l.retryDelay):
		case <-ctx.Done():
			return nil, domain.ErrLockNotAcquired
		}
	}
}
