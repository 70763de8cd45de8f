package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/platform"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/repository/cache"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/metrics"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	KindVector = "vector"
	KindRaster = "raster"
)

// TileLoader loads and decodes one tile. Implementations are safe for
// concurrent use; concurrent loads of the same tile are not deduplicated
// unless wrapped with Coalesce.
type TileLoader[T any] interface {
	Load(ctx context.Context, idx tile.Index) (T, error)
}

// URLSource maps a tile index to the URL its bytes are fetched from. The URL
// is also the persistent cache key.
type URLSource interface {
	URL(idx tile.Index) string
}

type URLSourceFunc func(idx tile.Index) string

func (f URLSourceFunc) URL(idx tile.Index) string {
	return f(idx)
}

type LoaderOptions struct {
	// OfflineMode disables network fetches; tiles missing from the cache
	// are reported as ErrDoesNotExist.
	OfflineMode bool
	// TileSize rescales raster tiles of a different size. Zero keeps the
	// decoded size.
	TileSize int
}

// loader implements cache lookup, fetch, write-back and decode for one tile
// kind. Each Load performs at most one cache read, one fetch and one decode.
type loader[T any] struct {
	kind     string
	source   URLSource
	platform platform.Platform
	cache    cache.TileCache
	decode   func([]byte) (T, error)
	offline  atomic.Bool
	logger   logger.Logger
}

func newLoader[T any](
	kind string,
	source URLSource,
	p platform.Platform,
	c cache.TileCache,
	decode func([]byte) (T, error),
	opts LoaderOptions,
	l logger.Logger,
) *loader[T] {
	if c == nil {
		c = cache.NewNoopCache()
	}

	ld := &loader[T]{
		kind:     kind,
		source:   source,
		platform: p,
		cache:    c,
		decode:   decode,
		logger:   logger.OrNop(l),
	}
	ld.offline.Store(opts.OfflineMode)
	return ld
}

func (l *loader[T]) OfflineMode() bool {
	return l.offline.Load()
}

func (l *loader[T]) SetOfflineMode(offline bool) {
	l.offline.Store(offline)
}

// FlightKey identifies what a load of idx would do right now: the URL it
// reads and whether it may fetch.
func (l *loader[T]) FlightKey(idx tile.Index) string {
	url := l.source.URL(idx)
	if l.OfflineMode() {
		return "offline:" + url
	}
	return url
}

func (l *loader[T]) Load(ctx context.Context, idx tile.Index) (T, error) {
	var zero T

	ctx, span := telemetry.Tracer().Start(ctx, "loader.Load",
		trace.WithAttributes(
			attribute.String("tile.kind", l.kind),
			attribute.String("tile.index", idx.String()),
		),
	)
	defer span.End()

	data, err := l.LoadRaw(ctx, idx)
	if err != nil {
		l.fail(span, err)
		return zero, err
	}

	v, err := l.decode(data)
	if err != nil {
		l.logger.Warn("failed to decode tile", "kind", l.kind, "tile", idx.String(), "size", len(data), "error", err)
		metrics.TileDecodeFailures.WithLabelValues(l.kind).Inc()
		err = fmt.Errorf("%w: %w", ErrDecoding, err)
		l.fail(span, err)
		return zero, err
	}

	metrics.TileLoads.WithLabelValues(l.kind, "ok").Inc()
	span.SetStatus(codes.Ok, "")
	return v, nil
}

// LoadRaw returns the undecoded tile bytes, from the cache when present.
func (l *loader[T]) LoadRaw(ctx context.Context, idx tile.Index) ([]byte, error) {
	url := l.source.URL(idx)

	data, ok, err := l.cache.Get(ctx, url)
	switch {
	case err != nil:
		l.logger.Warn("cache lookup failed, treating as miss", "url", url, "error", err)
	case ok:
		l.logger.Debug("cache hit", "url", url, "size", len(data))
		metrics.TileCacheHits.WithLabelValues(l.kind).Inc()
		return data, nil
	}
	metrics.TileCacheMisses.WithLabelValues(l.kind).Inc()

	if l.OfflineMode() {
		l.logger.Debug("cache miss in offline mode", "url", url)
		return nil, fmt.Errorf("%w: %s is not cached and offline mode is on", ErrDoesNotExist, url)
	}

	l.logger.Info("fetching tile", "url", url)
	data, err = l.platform.LoadBytesFromURL(ctx, url)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrDoesNotExist, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	if err := l.cache.Set(ctx, url, data); err != nil {
		l.logger.Warn("failed to write tile to cache", "url", url, "error", err)
		metrics.TileCacheWriteFailures.WithLabelValues(l.kind).Inc()
	}

	return data, nil
}

func (l *loader[T]) fail(span trace.Span, err error) {
	metrics.TileLoads.WithLabelValues(l.kind, resultLabel(err)).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrDoesNotExist):
		return "does_not_exist"
	case errors.Is(err, ErrDecoding):
		return "decoding"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "error"
	}
}
