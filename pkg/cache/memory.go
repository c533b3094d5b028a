package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryItem struct {
	data     []byte
	expireAt time.Time
}

func (m *memoryItem) expired() bool {
	return !m.expireAt.IsZero() && time.Now().After(m.expireAt)
}

// MemoryCache implements Store using in-memory storage.
type MemoryCache struct {
	mu      sync.RWMutex
	data    map[string]*memoryItem
	ticker  *time.Ticker
	done    chan struct{}
	maxSize int
}

// NewMemoryCache creates an in-memory cache with periodic cleanup.
func NewMemoryCache() *MemoryCache {
	mc := &MemoryCache{
		data:    make(map[string]*memoryItem),
		ticker:  time.NewTicker(5 * time.Minute),
		done:    make(chan struct{}),
		maxSize: 1000,
	}

	go mc.cleanupExpired()
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var expireAt time.Time
	if ttl > 0 {
		expireAt = time.Now().Add(ttl)
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.data) >= mc.maxSize {
		mc.evictOldest()
	}
	mc.data[key] = &memoryItem{data: b, expireAt: expireAt}
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mu.RLock()
	item, ok := mc.data[key]
	mc.mu.RUnlock()

	if !ok || item.expired() {
		if ok {
			mc.mu.Lock()
			// Only drop the entry we saw expire; a Set may have refreshed
			// the key between the read and write locks.
			if cur, present := mc.data[key]; present && cur == item {
				delete(mc.data, key)
			}
			mc.mu.Unlock()
		}
		return ErrCacheMiss
	}

	return json.Unmarshal(item.data, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for _, key := range keys {
		delete(mc.data, key)
	}
	return nil
}

// Close stops the cleanup goroutine.
func (mc *MemoryCache) Close() error {
	mc.ticker.Stop()
	close(mc.done)
	return nil
}

// evictOldest drops the entry closest to expiry. Caller holds the lock.
func (mc *MemoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, item := range mc.data {
		if oldestKey == "" || item.expireAt.Before(oldest) {
			oldestKey = k
			oldest = item.expireAt
		}
	}
	if oldestKey != "" {
		delete(mc.data, oldestKey)
	}
}

func (mc *MemoryCache) cleanupExpired() {
	for {
		select {
		case <-mc.done:
			return
		case <-mc.ticker.C:
			mc.mu.Lock()
			for k, item := range mc.data {
				if item.expired() {
					delete(mc.data, k)
				}
			}
			mc.mu.Unlock()
		}
	}
}
