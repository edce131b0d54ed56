package reactor

import "sync"

type direction int

const (
	upstream direction = iota
	downstream
)

type closureKey struct {
	id         GA
	dir        direction
	transitive bool
}

// closureCache memoizes query results for one graph. Entries are never
// invalidated because the graph never changes; stored slices are never
// handed out directly.
type closureCache struct {
	mu      sync.RWMutex
	entries map[closureKey][]int
}

func newClosureCache() *closureCache {
	return &closureCache{entries: make(map[closureKey][]int)}
}

func (c *closureCache) get(k closureKey) ([]int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[k]
	return v, ok
}

func (c *closureCache) put(k closureKey, v []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = v
}
