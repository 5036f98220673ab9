package redisclient

import (
	"context"
	"fmt"
	"time"

	"onsen-store/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Client wraps the Redis connection used for session carts and the
// checkout submission locks.
type Client struct {
	rdb    *redis.Client
	logger zerolog.Logger
}

// NewClient creates a new Redis client and verifies the connection.
func NewClient(cfg config.RedisConfig, logger zerolog.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("redis connection established")

	return &Client{
		rdb:    rdb,
		logger: logger.With().Str("component", "redis").Logger(),
	}, nil
}

// Raw returns the underlying Redis client.
func (c *Client) Raw() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// AcquireLock acquires a named lock with a TTL. It returns false when
// the lock is already held.
func (c *Client) AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, fmt.Sprintf("lock:%s", lockKey), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock %s: %w", lockKey, err)
	}
	return ok, nil
}

// ReleaseLock releases a named lock.
func (c *Client) ReleaseLock(ctx context.Context, lockKey string) error {
	if err := c.rdb.Del(ctx, fmt.Sprintf("lock:%s", lockKey)).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", lockKey, err)
	}
	return nil
}
