// Package cache wraps a Valkey/Redis client used as a read-through
// cache for user-existence lookups. Every booking and item operation
// starts with an existence check on the acting user, which makes that
// lookup the hottest query in the system.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type ValkeyClient struct {
	client *redis.Client
	ttl    time.Duration
}

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &ValkeyClient{client: rdb, ttl: ttl}, nil
}

func userKey(userID int64) string {
	return fmt.Sprintf("users:exists:%d", userID)
}

// GetUserExists reports a cached existence verdict for the user. The
// second return value is false on a cache miss or error.
func (c *ValkeyClient) GetUserExists(ctx context.Context, userID int64) (bool, bool) {
	val, err := c.client.Get(ctx, userKey(userID)).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

// SetUserExists stores an existence verdict with the configured TTL.
// Negative verdicts are cached too; deletion invalidates explicitly.
func (c *ValkeyClient) SetUserExists(ctx context.Context, userID int64, exists bool) error {
	val := "0"
	if exists {
		val = "1"
	}
	return c.client.Set(ctx, userKey(userID), val, c.ttl).Err()
}

// InvalidateUser drops the cached verdict, used after create/delete.
func (c *ValkeyClient) InvalidateUser(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, userKey(userID)).Err()
}

func (c *ValkeyClient) Close() error {
	return c.client.Close()
}
