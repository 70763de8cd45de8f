package render

import (
	"context"

	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/metrics"
)

// Renderer consumes finalized batches. A renderer draws the world set with the
// view transform and every screen set at its projected anchor.
type Renderer interface {
	Render(ctx context.Context, batch *Batch) error
}

type RendererFunc func(ctx context.Context, batch *Batch) error

func (f RendererFunc) Render(ctx context.Context, batch *Batch) error {
	return f(ctx, batch)
}

// StatsRenderer draws nothing. It logs the batch composition and exports it as
// metrics.
type StatsRenderer struct {
	logger logger.Logger
}

func NewStatsRenderer(l logger.Logger) *StatsRenderer {
	return &StatsRenderer{logger: logger.OrNop(l)}
}

var _ Renderer = (*StatsRenderer)(nil)

func (r *StatsRenderer) Render(_ context.Context, batch *Batch) error {
	s := batch.Stats

	metrics.BundlePrimitives.WithLabelValues("world", "point").Add(float64(s.Points))
	metrics.BundlePrimitives.WithLabelValues("world", "line").Add(float64(s.Lines))
	metrics.BundlePrimitives.WithLabelValues("world", "polygon").Add(float64(s.Polygons))
	metrics.BundlePrimitives.WithLabelValues("world", "image").Add(float64(s.Images))
	metrics.BundlePrimitives.WithLabelValues("world", "label").Add(float64(s.WorldLabels))
	metrics.BundlePrimitives.WithLabelValues("screen", "label").Add(float64(s.ScreenLabels))
	metrics.BundlePrimitives.WithLabelValues("screen", "marker").Add(float64(s.Markers))

	r.logger.Debug("render batch",
		"world", s.World(),
		"screen_sets", s.Screen(),
		"points", s.Points,
		"lines", s.Lines,
		"polygons", s.Polygons,
		"labels", s.WorldLabels+s.ScreenLabels,
		"markers", s.Markers,
	)
	return nil
}
