package cache

import (
	"container/list"
	"sync"
)

// lruEntry is the value stored in each list element.
type lruEntry[V any] struct {
	key   string
	value V
}

// LRU is a thread-safe least-recently-used cache. When the cache exceeds its
// maximum size the least recently accessed entry is evicted.
type LRU[V any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List // front = most recently used
	stats   *Statistics
}

// NewLRU creates an LRU cache holding at most maxSize entries. A maxSize of
// zero or less falls back to a single-entry cache rather than disabling
// caching entirely.
func NewLRU[V any](maxSize int) *LRU[V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &LRU[V]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		stats:   NewStatistics(),
	}
}

// Get retrieves a value by key and marks it as recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, exists := c.items[key]
	if !exists {
		var zero V
		c.stats.Miss()
		return zero, false
	}

	c.order.MoveToFront(element)
	c.stats.Hit()
	return element.Value.(*lruEntry[V]).value, true
}

// Set stores a value and marks it as recently used, evicting the least
// recently used entry when the cache is full.
func (c *LRU[V]) Set(key string, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, exists := c.items[key]; exists {
		element.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(element)
		c.stats.Set()
		return false
	}

	c.items[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
	if len(c.items) > c.maxSize {
		c.evictOldest()
	}
	c.stats.Set()
	c.stats.UpdateSize(int64(len(c.items)))
	return true
}

// Clear removes all entries.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.stats.UpdateSize(0)
}

// Len returns the current number of entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns the statistics tracker.
func (c *LRU[V]) Stats() *Statistics {
	return c.stats
}

// evictOldest removes the entry at the back of the order list.
// Caller must hold c.mu.
func (c *LRU[V]) evictOldest() {
	element := c.order.Back()
	if element == nil {
		return
	}
	entry := element.Value.(*lruEntry[V])
	c.order.Remove(element)
	delete(c.items, entry.key)
	c.stats.Eviction()
}
