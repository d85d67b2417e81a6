// Package memo caches ranking results per draft state.
package memo

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 1024

// Cache stores values by draft key.
type Cache[V any] interface {
	// Get returns the value stored for key, if any.
	Get(ctx context.Context, key string) (V, bool)
	// Put stores v under key. Updating an existing key keeps its position in
	// the eviction order.
	Put(ctx context.Context, key string, v V)
	// Purge drops every entry.
	Purge()
	Size() int64
}

// Key encodes the three draft lists into a cache key. Names are quoted, so a
// name holding a separator never collides with two shorter names. Order within
// each list is kept: the same heroes in a different order produce a different
// key, because desired role order shows up in the output. Nil and empty lists
// share a key.
func Key(team, enemy, desired []string) string {
	parts := [3][]string{nonNil(team), nonNil(enemy), nonNil(desired)}
	// a [3][]string of plain strings always marshals
	b, _ := json.Marshal(parts)
	return string(b)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type node[V any] struct {
	key   string
	value V
	next  *node[V]
}

func (n *node[V]) reset() {
	var zero V
	n.key = ""
	n.value = zero
	n.next = nil
}

// inMemory is a bounded map with FIFO eviction. Entries form a singly linked
// list from oldest (head) to newest (tail).
type inMemory[V any] struct {
	mu       sync.Mutex
	entries  map[string]*node[V]
	head     *node[V]
	tail     *node[V]
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// New creates an in-memory cache.
func New[V any](opts ...Option) Cache[V] {
	cfg := config{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &inMemory[V]{
		entries: make(map[string]*node[V]),
		maxSize: cfg.maxSize,
	}
	c.nodePool.New = func() any { return &node[V]{} }
	return c
}

func (c *inMemory[V]) Get(_ context.Context, key string) (V, bool) {
	if c.maxSize <= 0 {
		var zero V
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

func (c *inMemory[V]) Put(_ context.Context, key string, v V) {
	if c.maxSize <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.value = v
		return
	}
	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	n := c.nodePool.Get().(*node[V])
	n.key = key
	n.value = v
	if c.tail == nil {
		c.head = n
	} else {
		c.tail.next = n
	}
	c.tail = n
	c.entries[key] = n
	c.size.Add(1)
}

// evictOldest must be called with c.mu held.
func (c *inMemory[V]) evictOldest() {
	n := c.head
	if n == nil {
		return
	}
	c.head = n.next
	if c.head == nil {
		c.tail = nil
	}
	delete(c.entries, n.key)
	n.reset()
	c.nodePool.Put(n)
	c.size.Add(-1)
}

func (c *inMemory[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.head != nil {
		c.evictOldest()
	}
}

func (c *inMemory[V]) Size() int64 {
	return c.size.Load()
}
