package cache

import (
	"container/list"
	"context"
	"sync"
)

type entry struct {
	key   string
	value TileCacheValue
}

// MemoryCache implements in-memory LRU cache
type MemoryCache struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	lruList *list.List
}

// NewMemoryCache creates a new in-memory LRU cache holding at most maxSize
// entries. A non-positive maxSize means unbounded.
func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lruList: list.New(),
	}
}

var _ TileCache = (*MemoryCache)(nil)

func (c *MemoryCache) Get(_ context.Context, key string) (TileCacheValue, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}

	c.lruList.MoveToFront(elem)
	return elem.Value.(*entry).value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value TileCacheValue) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry).value = value
		c.lruList.MoveToFront(elem)
		return nil
	}

	if c.maxSize > 0 && c.lruList.Len() >= c.maxSize {
		oldest := c.lruList.Back()
		if oldest != nil {
			delete(c.items, oldest.Value.(*entry).key)
			c.lruList.Remove(oldest)
		}
	}

	elem := c.lruList.PushFront(&entry{key: key, value: value})
	c.items[key] = elem
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lruList.Len()
}
