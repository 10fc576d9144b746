package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gdugdh24/matchmaker-backend/internal/config"
)

// lockOpTimeout bounds one SET NX or release call.
const lockOpTimeout = 500 * time.Millisecond

// NewRedisClient opens the client behind the cross-instance pair lock.
// Waiting for a pooled connection never outlasts the lock TTL.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  lockOpTimeout,
		WriteTimeout: lockOpTimeout,
		PoolSize:     cfg.PoolSize,
		PoolTimeout:  cfg.LockTTL,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", cfg.GetAddr(), err)
	}
	return client, nil
}
