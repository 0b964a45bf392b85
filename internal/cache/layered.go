package cache

import "time"

// LayeredCache reads memory first, then disk, promoting disk hits
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache builds a memory+disk cache sharing one TTL
func NewLayeredCache(dir string, ttl time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(ttl, 10*time.Minute),
		disk:   NewDiskCache(dir, ttl),
	}
}

// Get checks memory, then disk
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, ok := c.memory.Get(key); ok {
		return val, true
	}
	val, ok := c.disk.Get(key)
	if ok {
		_ = c.memory.Set(key, val, 0)
	}
	return val, ok
}

// Set writes both layers; a disk failure is reported after memory is updated
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes key from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear empties both layers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
