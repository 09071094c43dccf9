// Package cache is the in-process fallback for the detail cache when Redis is
// not configured. It stores JSON so that callers see the same copy semantics
// as with Redis.
package cache

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"
)

type item struct {
	value      []byte
	expiration int64
}

type Cache struct {
	items map[string]item
	mu    sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

// NewCache starts a janitor that evicts expired items every interval.
func NewCache(interval time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]item),
		stop:  make(chan struct{}),
	}
	if interval > 0 {
		go c.startGC(interval)
	}
	return c
}

func (c *Cache) IsEnabled() bool {
	return c != nil
}

func (c *Cache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{value: data, expiration: time.Now().Add(ttl).UnixNano()}
	return nil
}

func (c *Cache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	it, found := c.items[key]
	c.mu.RUnlock()

	if !found || time.Now().UnixNano() > it.expiration {
		return false, nil
	}
	if err := json.Unmarshal(it.value, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

// DeleteByPattern removes keys matching a glob pattern.
func (c *Cache) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deleted := 0
	for k := range c.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.items, k)
			deleted++
		}
	}
	return deleted, nil
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the janitor.
func (c *Cache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

func (c *Cache) startGC(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now().UnixNano()
			c.mu.Lock()
			for k, v := range c.items {
				if now > v.expiration {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
