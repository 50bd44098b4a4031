package parser

import (
	"sync"

	"github.com/seuros/gopher-tape/src/ast"
)

// DefaultCacheSize bounds a Cache created with NewCache(0).
const DefaultCacheSize = 256

// Cache keeps parsed programs keyed by source text.
// Thread-safe with RWMutex and FIFO eviction. Cached programs are shared,
// so callers must not mutate them.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*ast.Program
	order   []string // FIFO insertion order
	maxSize int
	hits    uint64
	misses  uint64
}

// NewCache creates a cache holding at most maxSize programs.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Cache{
		entries: make(map[string]*ast.Program),
		maxSize: maxSize,
	}
}

// Parse returns the cached program for source, parsing and storing it on a
// miss. Parse errors are not cached.
func (c *Cache) Parse(source string) (*ast.Program, error) {
	c.mu.RLock()
	if p, ok := c.entries[source]; ok {
		c.mu.RUnlock()
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return p, nil
	}
	c.mu.RUnlock()

	prog, err := Parse(source)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.misses++
	if p, ok := c.entries[source]; ok {
		return p, nil
	}

	if len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[source] = prog
	c.order = append(c.order, source)
	return prog, nil
}

// Len reports how many programs are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
