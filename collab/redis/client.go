package dskredis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/go-dsk/dsk"
)

// Client wraps a *redis.Client, exposing a handful of commands as ops. It
// holds no state of its own beyond the wrapped client, mirroring the
// teacher's thin-wrapper-over-a-driver shape elsewhere in this module.
type Client struct {
	rdb *redis.Client
}

// NewClient wraps rdb.
func NewClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Get returns an Op that fetches key's value. A missing key surfaces as a
// KindNotFound error rather than an empty string, so callers can
// distinguish "absent" from "empty" with errs.Is.
func (c *Client) Get(key string) dsk.Op[string] {
	return dsk.BlockingCall(func(ctx context.Context) (string, error) {
		v, err := c.rdb.Get(ctx, key).Result()
		if err != nil {
			return "", classifyError(err)
		}
		return v, nil
	})
}

// Set returns an Op that stores key=val with the given expiry (zero means
// no expiry).
func (c *Client) Set(key, val string, ttl time.Duration) dsk.Op[struct{}] {
	return dsk.BlockingCall(func(ctx context.Context) (struct{}, error) {
		if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
			return struct{}{}, classifyError(err)
		}
		return struct{}{}, nil
	})
}

// Del returns an Op that removes the given keys, reporting how many were
// actually present.
func (c *Client) Del(keys ...string) dsk.Op[int64] {
	return dsk.BlockingCall(func(ctx context.Context) (int64, error) {
		n, err := c.rdb.Del(ctx, keys...).Result()
		if err != nil {
			return 0, classifyError(err)
		}
		return n, nil
	})
}

// Ping returns an Op completing once the server replies, backing a
// healthcheck the way dmitrymomot-foundation's Healthcheck does.
func (c *Client) Ping() dsk.Op[struct{}] {
	return dsk.BlockingCall(func(ctx context.Context) (struct{}, error) {
		if err := c.rdb.Ping(ctx).Err(); err != nil {
			return struct{}{}, classifyError(err)
		}
		return struct{}{}, nil
	})
}
