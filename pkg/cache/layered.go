package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache reads through memory before Redis, writing to both.
// The remote layer is optional; with a nil remote it degrades to memory-only.
type LayeredCache struct {
	local  Store
	remote Store
}

// NewLayeredCache composes a local and an optional remote store.
func NewLayeredCache(local, remote Store) *LayeredCache {
	return &LayeredCache{local: local, remote: remote}
}

func (c *LayeredCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if err := c.local.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	if c.remote != nil {
		return c.remote.Set(ctx, key, value, ttl)
	}
	return nil
}

func (c *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	err := c.local.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) || c.remote == nil {
		return err
	}

	if err := c.remote.Get(ctx, key, dest); err != nil {
		return err
	}
	// Promote the remote hit; remote TTL still bounds staleness.
	_ = c.local.Set(ctx, key, dest, time.Minute)
	return nil
}

func (c *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	err := c.local.Delete(ctx, keys...)
	if c.remote != nil {
		if rerr := c.remote.Delete(ctx, keys...); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}

func (c *LayeredCache) Close() error {
	err := c.local.Close()
	if c.remote != nil {
		if rerr := c.remote.Close(); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}
