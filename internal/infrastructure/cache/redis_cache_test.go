package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNilClientAlwaysMisses(t *testing.T) {
	c := New(nil, "geo:", nil)
	c.Set(context.Background(), "k", []byte("v"), time.Minute)
	assert.Nil(t, c.Get(context.Background(), "k"))

	var zero *Client
	assert.Nil(t, zero.Get(context.Background(), "k"))
}

func TestUnreachableRedisFailsSafe(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	c := New(rdb, "geo:", nil)
	assert.NotPanics(t, func() {
		c.Set(context.Background(), "k", []byte("v"), time.Minute)
	})
	assert.Nil(t, c.Get(context.Background(), "k"))
}
