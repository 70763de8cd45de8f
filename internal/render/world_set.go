package render

import (
	"github.com/jaennil/guide_helper/backend/mapcore/internal/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

type WorldPoint struct {
	Position orb.Point
	Paint    PointPaint
}

type WorldLine struct {
	Line   orb.LineString
	Closed bool
	Paint  LinePaint
}

type WorldPolygon struct {
	Polygon orb.Polygon
	Paint   PolygonPaint
}

type WorldImage struct {
	Image *raster.Image
	// Corners in map coordinates: top-left, top-right, bottom-right, bottom-left.
	Corners [4]orb.Point
	Paint   ImagePaint
}

// Label text scales with the map. Offset is in pixels at the reference
// resolution.
type Label struct {
	Position orb.Point
	Text     string
	Style    TextStyle
	Offset   orb.Point
}

// WorldSet holds primitives in map coordinates. All of them share the view
// transform, so a renderer can draw each slice in one batch.
type WorldSet struct {
	Points   []WorldPoint
	Lines    []WorldLine
	Polygons []WorldPolygon
	Images   []WorldImage
	Labels   []Label
}

func (w *WorldSet) Len() int {
	return len(w.Points) + len(w.Lines) + len(w.Polygons) + len(w.Images) + len(w.Labels)
}

// Bound returns the extent of everything in the set. ok is false for an empty
// set.
func (w *WorldSet) Bound() (b orb.Bound, ok bool) {
	extend := func(g orb.Geometry) {
		if !ok {
			b, ok = g.Bound(), true
			return
		}
		b = b.Union(g.Bound())
	}

	for _, p := range w.Points {
		extend(p.Position)
	}
	for _, l := range w.Lines {
		extend(l.Line)
	}
	for _, p := range w.Polygons {
		extend(p.Polygon)
	}
	for _, img := range w.Images {
		extend(orb.MultiPoint(img.Corners[:]))
	}
	for _, l := range w.Labels {
		extend(l.Position)
	}
	return b, ok
}

// simplifyLine drops vertices closer than minResolution to the simplified
// shape. The input is left untouched.
func simplifyLine(ls orb.LineString, minResolution float64) orb.LineString {
	if minResolution <= 0 || len(ls) <= 2 {
		return ls
	}
	return simplify.DouglasPeucker(minResolution).LineString(ls.Clone())
}

func simplifyRing(r orb.Ring, minResolution float64) orb.Ring {
	if minResolution <= 0 || len(r) <= 4 {
		return r
	}
	s := simplify.DouglasPeucker(minResolution).Ring(r.Clone())
	if len(s) < 4 {
		return r
	}
	return s
}

func simplifyPolygon(p orb.Polygon, minResolution float64) orb.Polygon {
	if minResolution <= 0 {
		return p
	}
	out := make(orb.Polygon, 0, len(p))
	for i, r := range p {
		s := simplifyRing(r, minResolution)
		// holes that collapse below the resolution are invisible anyway
		if i > 0 && len(s) < 4 {
			continue
		}
		out = append(out, s)
	}
	return out
}
