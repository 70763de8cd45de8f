package cache

import "context"

// NoopCache never stores anything; every lookup is a miss.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

var _ TileCache = (*NoopCache)(nil)

func (c *NoopCache) Get(context.Context, string) (TileCacheValue, bool, error) {
	return nil, false, nil
}

func (c *NoopCache) Set(context.Context, string, TileCacheValue) error {
	return nil
}
