// Package render accumulates drawable primitives for one render pass and
// partitions them into a world set, which follows the map transform, and
// screen sets, which keep a fixed pixel size.
package render

import (
	"context"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/raster"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/metrics"
	"github.com/paulmach/orb"
)

// Bundle collects primitives during a single render pass. It is not safe for
// concurrent use. Once finalized it can not be modified; any further Add call
// panics.
type Bundle struct {
	world     WorldSet
	screen    []*ScreenSet
	measurer  TextMeasurer
	finalized bool
}

func NewBundle() *Bundle {
	return NewBundleWithMeasurer(DefaultMeasurer())
}

func NewBundleWithMeasurer(m TextMeasurer) *Bundle {
	return &Bundle{measurer: m}
}

func (b *Bundle) checkAccumulating() {
	if b.finalized {
		panic("render: bundle is finalized")
	}
}

func (b *Bundle) AddPoint(p orb.Point, paint PointPaint) {
	b.checkAccumulating()
	b.world.Points = append(b.world.Points, WorldPoint{Position: p, Paint: paint})
}

func (b *Bundle) AddLine(ls orb.LineString, paint LinePaint, minResolution float64) {
	b.checkAccumulating()
	if len(ls) < 2 {
		return
	}
	b.world.Lines = append(b.world.Lines, WorldLine{
		Line:  simplifyLine(ls, minResolution),
		Paint: paint,
	})
}

// AddRing adds the outline of r as a closed line.
func (b *Bundle) AddRing(r orb.Ring, paint LinePaint, minResolution float64) {
	b.checkAccumulating()
	if len(r) < 2 {
		return
	}
	b.world.Lines = append(b.world.Lines, WorldLine{
		Line:   orb.LineString(simplifyRing(r, minResolution)),
		Closed: true,
		Paint:  paint,
	})
}

func (b *Bundle) AddPolygon(p orb.Polygon, paint PolygonPaint, minResolution float64) {
	b.checkAccumulating()
	if len(p) == 0 || len(p[0]) < 3 {
		return
	}
	b.world.Polygons = append(b.world.Polygons, WorldPolygon{
		Polygon: simplifyPolygon(p, minResolution),
		Paint:   paint,
	})
}

func (b *Bundle) AddImage(img *raster.Image, corners [4]orb.Point, paint ImagePaint) {
	b.checkAccumulating()
	if img == nil || img.Width == 0 || img.Height == 0 {
		return
	}
	b.world.Images = append(b.world.Images, WorldImage{Image: img, Corners: corners, Paint: paint})
}

// AddLabel adds text at pos. Labels attached to the map go to the world set and
// scale with zoom; others get their own screen set sized from font metrics.
// Empty text or a non-positive font size adds nothing.
func (b *Bundle) AddLabel(pos orb.Point, text string, style TextStyle, offset orb.Point, attachToMap bool) {
	b.checkAccumulating()
	if text == "" || style.FontSize <= 0 {
		return
	}

	if attachToMap {
		b.world.Labels = append(b.world.Labels, Label{Position: pos, Text: text, Style: style, Offset: offset})
		return
	}

	w, h := b.measurer.Measure(text, style.FontSize)
	if w <= 0 || h <= 0 {
		return
	}
	b.screen = append(b.screen, &ScreenSet{
		Kind:   ScreenLabel,
		Anchor: pos,
		Box:    alignedBox(w, h, style, offset),
		Text:   text,
		Style:  style,
	})
}

func (b *Bundle) AddMarker(pos orb.Point, style MarkerStyle) {
	b.checkAccumulating()
	w, h := style.size()
	if w <= 0 || h <= 0 {
		return
	}
	b.screen = append(b.screen, &ScreenSet{
		Kind:   ScreenMarker,
		Anchor: pos,
		Box:    anchoredBox(w, h, style.Anchor),
		Image:  style.Image,
	})
}

func (b *Bundle) World() *WorldSet {
	return &b.world
}

func (b *Bundle) ScreenSets() []*ScreenSet {
	return b.screen
}

func (b *Bundle) IsEmpty() bool {
	return b.world.Len() == 0 && len(b.screen) == 0
}

// Bounds covers the world set and the anchors of every screen set.
func (b *Bundle) Bounds() (orb.Bound, bool) {
	bound, ok := b.world.Bound()
	for _, s := range b.screen {
		if !ok {
			bound, ok = s.Anchor.Bound(), true
			continue
		}
		bound = bound.Extend(s.Anchor)
	}
	return bound, ok
}

// Finalize hands the accumulated content over as an immutable Batch.
func (b *Bundle) Finalize() *Batch {
	b.checkAccumulating()
	b.finalized = true

	batch := &Batch{
		World:  b.world,
		Screen: b.screen,
	}
	batch.Stats = batch.computeStats()

	b.world = WorldSet{}
	b.screen = nil
	return batch
}

// Submit finalizes the bundle and passes the batch to r.
func (b *Bundle) Submit(ctx context.Context, r Renderer) (*Batch, error) {
	batch := b.Finalize()
	if err := r.Render(ctx, batch); err != nil {
		return nil, err
	}
	metrics.BundlesSubmitted.Inc()
	return batch, nil
}

// Batch is the finalized content of a Bundle.
type Batch struct {
	World  WorldSet
	Screen []*ScreenSet
	Stats  Stats
}

type Stats struct {
	Points       int `json:"points"`
	Lines        int `json:"lines"`
	Polygons     int `json:"polygons"`
	Images       int `json:"images"`
	WorldLabels  int `json:"world_labels"`
	ScreenLabels int `json:"screen_labels"`
	Markers      int `json:"markers"`
}

func (s Stats) World() int {
	return s.Points + s.Lines + s.Polygons + s.Images + s.WorldLabels
}

func (s Stats) Screen() int {
	return s.ScreenLabels + s.Markers
}

func (b *Batch) computeStats() Stats {
	s := Stats{
		Points:      len(b.World.Points),
		Lines:       len(b.World.Lines),
		Polygons:    len(b.World.Polygons),
		Images:      len(b.World.Images),
		WorldLabels: len(b.World.Labels),
	}
	for _, set := range b.Screen {
		switch set.Kind {
		case ScreenLabel:
			s.ScreenLabels++
		case ScreenMarker:
			s.Markers++
		}
	}
	return s
}
