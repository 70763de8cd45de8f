package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TileLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tile_loads_total",
		Help: "Total number of tile loads by loader kind and result",
	}, []string{"kind", "result"})

	TileCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tile_cache_hits_total",
		Help: "Total number of persistent cache hits in tile loaders",
	}, []string{"kind"})

	TileCacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tile_cache_misses_total",
		Help: "Total number of persistent cache misses in tile loaders",
	}, []string{"kind"})

	TileCacheWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tile_cache_write_failures_total",
		Help: "Total number of swallowed cache write-back failures",
	}, []string{"kind"})

	TileDecodeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tile_decode_failures_total",
		Help: "Total number of tile payloads that failed to decode",
	}, []string{"kind"})

	TilesUpstreamRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tiles_upstream_requests_total",
		Help: "Total number of upstream tile requests",
	})

	TilesUpstreamLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tiles_upstream_latency_seconds",
		Help:    "Latency of upstream tile fetches in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// Cache backend metrics
	CacheOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cache_operation_duration_seconds",
		Help:    "Duration of cache backend operations in seconds",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"backend", "operation"})

	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_errors_total",
		Help: "Total number of cache backend errors",
	}, []string{"backend", "operation"})

	// Render bundle metrics
	BundlePrimitives = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "render_bundle_primitives_total",
		Help: "Total number of primitives handed to the renderer by anchor space and kind",
	}, []string{"anchor", "kind"})

	BundlesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "render_bundles_submitted_total",
		Help: "Total number of finalized render bundles handed to the renderer",
	})
)
