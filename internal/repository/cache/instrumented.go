package cache

import (
	"context"
	"time"

	"github.com/jaennil/guide_helper/backend/mapcore/pkg/metrics"
)

type instrumented struct {
	backend string
	next    TileCache
}

// Instrument records operation latency and errors of c under the given backend
// label.
func Instrument(backend string, c TileCache) TileCache {
	return &instrumented{backend: backend, next: c}
}

func (i *instrumented) Get(ctx context.Context, key string) (TileCacheValue, bool, error) {
	start := time.Now()
	v, ok, err := i.next.Get(ctx, key)
	i.observe("get", start, err)
	return v, ok, err
}

func (i *instrumented) Set(ctx context.Context, key string, v TileCacheValue) error {
	start := time.Now()
	err := i.next.Set(ctx, key, v)
	i.observe("set", start, err)
	return err
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	metrics.CacheOperationDuration.WithLabelValues(i.backend, op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CacheErrors.WithLabelValues(i.backend, op).Inc()
	}
}
