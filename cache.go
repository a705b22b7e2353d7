package tokendi

import (
	"sync"
)

// instanceCache holds the singleton instances of one container, keyed by
// provider token.
type instanceCache struct {
	instances map[Token]any
	mu        sync.RWMutex
}

// newInstanceCache creates a new instance cache
func newInstanceCache() *instanceCache {
	return &instanceCache{
		instances: make(map[Token]any),
	}
}

// get retrieves an instance from the cache
func (c *instanceCache) get(token Token) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	instance, ok := c.instances[token]
	return instance, ok
}

// set stores an instance in the cache. A later set for the same token wins.
func (c *instanceCache) set(token Token, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[token] = instance
}

// clear removes all instances from the cache
func (c *instanceCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances = make(map[Token]any)
}

// len returns the number of cached instances
func (c *instanceCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.instances)
}
