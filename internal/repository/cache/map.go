package cache

import (
	"context"
	"sync"
)

// MapCache keeps every entry in memory for the lifetime of the process.
type MapCache struct {
	m *TypedSyncMap
}

type TypedSyncMap struct {
	m sync.Map
}

func (c *TypedSyncMap) Load(k string) (TileCacheValue, bool) {
	v, exists := c.m.Load(k)
	if !exists {
		return nil, false
	}
	return v.(TileCacheValue), exists
}

func (c *TypedSyncMap) Store(k string, v TileCacheValue) {
	c.m.Store(k, v)
}

func (c *TypedSyncMap) Len() int {
	n := 0
	c.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func NewMapCache() *MapCache {
	return &MapCache{
		m: &TypedSyncMap{},
	}
}

var _ TileCache = (*MapCache)(nil)

func (c *MapCache) Get(_ context.Context, k string) (TileCacheValue, bool, error) {
	v, exists := c.m.Load(k)
	return v, exists, nil
}

func (c *MapCache) Set(_ context.Context, k string, v TileCacheValue) error {
	c.m.Store(k, v)
	return nil
}

func (c *MapCache) Len() int {
	return c.m.Len()
}
