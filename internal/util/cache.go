package util

import (
	"container/list"
	"sync"
)

type (
	// LRUCache memoizes constructed values by key, evicting the least
	// recently used entry once capacity is exceeded
	LRUCache[T any] struct {
		entries  map[string]*list.Element
		order    *list.List
		capacity int
		mu       sync.Mutex
	}

	// Constructor builds the value for a key on a cache miss
	Constructor[T any] func() (T, error)

	cacheEntry[T any] struct {
		value T
		key   string
	}
)

// NewLRUCache creates a cache holding at most capacity entries
func NewLRUCache[T any](capacity int) *LRUCache[T] {
	return &LRUCache[T]{
		entries:  map[string]*list.Element{},
		order:    list.New(),
		capacity: capacity,
	}
}

// Get returns the cached value for key, invoking create on a miss.
// Construction runs outside the lock, so concurrent misses for the same
// key may both build; only one result is retained. A failed create
// caches nothing
func (c *LRUCache[T]) Get(key string, create Constructor[T]) (T, error) {
	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		c.mu.Unlock()
		return elem.Value.(*cacheEntry[T]).value, nil
	}
	c.mu.Unlock()

	value, err := create()
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*cacheEntry[T]).value, nil
	}

	c.entries[key] = c.order.PushFront(&cacheEntry[T]{
		key:   key,
		value: value,
	})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry[T]).key)
	}
	return value, nil
}
