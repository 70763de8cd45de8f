package cache

import "context"

type namespaced struct {
	prefix string
	next   TileCache
}

// WithNamespace prefixes every key with namespace + ":" so that several
// loaders can share one physical store without key collisions. An empty
// namespace returns c unchanged.
func WithNamespace(c TileCache, namespace string) TileCache {
	if namespace == "" {
		return c
	}
	return &namespaced{prefix: namespace + ":", next: c}
}

func (n *namespaced) Get(ctx context.Context, key string) (TileCacheValue, bool, error) {
	return n.next.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, v TileCacheValue) error {
	return n.next.Set(ctx, n.prefix+key, v)
}
