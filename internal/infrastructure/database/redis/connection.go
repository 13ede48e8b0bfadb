// internal/infrastructure/database/redis/connection.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a key does not exist or has expired
var ErrNotFound = errors.New("key not found")

// Client wraps the Redis client
type Client struct {
	Redis *redis.Client
}

// NewConnection creates a new Redis connection
func NewConnection(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.WithField("addr", cfg.GetRedisAddr()).Info("Redis connection established")

	return NewClient(rdb), nil
}

// NewClient wraps an existing go-redis client
func NewClient(rdb *redis.Client) *Client {
	return &Client{Redis: rdb}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.Redis.Close()
}

// GetClient returns the Redis client instance
func (c *Client) GetClient() *redis.Client {
	return c.Redis
}

// Health checks the Redis connection health
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.Redis.Ping(ctx).Err()
}

// Del deletes one or more keys
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.Redis.Del(ctx, keys...).Err()
}

// Expire refreshes a key's time to live
func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) error {
	ok, err := c.Redis.Expire(ctx, key, expiration).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SetJSON stores value encoded as JSON
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return c.Redis.Set(ctx, key, payload, expiration).Err()
}

// GetJSON decodes the JSON value at key into dest
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) error {
	val, err := c.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}
