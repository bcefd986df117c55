// Package cache is a best-effort key/value cache over Redis. Every failure
// behaves like a miss so a broken cache never fails a request.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Client struct {
	client *redis.Client
	prefix string
	logger *logrus.Logger
}

// New wraps rdb. A nil rdb yields a cache that always misses.
func New(rdb *redis.Client, prefix string, logger *logrus.Logger) *Client {
	return &Client{client: rdb, prefix: prefix, logger: logger}
}

// Get returns the value, or nil on a miss or when redis is unavailable.
func (c *Client) Get(ctx context.Context, key string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	res, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		c.warn("cache get failed", key, err)
		return nil
	}
	return res
}

// Set stores value with ttl, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		c.warn("cache set failed", key, err)
	}
}

func (c *Client) warn(msg, key string, err error) {
	if c.logger != nil {
		c.logger.WithError(err).WithField("key", key).Warn(msg)
	}
}
