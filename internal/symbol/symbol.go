// Package symbol turns features and their geometries into render primitives.
package symbol

import (
	"github.com/jaennil/guide_helper/backend/mapcore/internal/render"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Symbol emits the primitives representing one feature into bundle.
// Geometry is in map coordinates; minResolution is the smallest meters per
// pixel the output is drawn at.
type Symbol[F any] interface {
	Render(feature F, geometry orb.Geometry, minResolution float64, bundle *render.Bundle)
}

type Func[F any] func(feature F, geometry orb.Geometry, minResolution float64, bundle *render.Bundle)

func (f Func[F]) Render(feature F, geometry orb.Geometry, minResolution float64, bundle *render.Bundle) {
	f(feature, geometry, minResolution, bundle)
}

// Composite renders every symbol in order.
type Composite[F any] []Symbol[F]

func (c Composite[F]) Render(feature F, geometry orb.Geometry, minResolution float64, bundle *render.Bundle) {
	for _, s := range c {
		s.Render(feature, geometry, minResolution, bundle)
	}
}

// points expands point geometries. Other geometry types yield nothing.
func points(g orb.Geometry) []orb.Point {
	switch g := g.(type) {
	case orb.Point:
		return []orb.Point{g}
	case orb.MultiPoint:
		return g
	case orb.Collection:
		var out []orb.Point
		for _, c := range g {
			out = append(out, points(c)...)
		}
		return out
	}
	return nil
}

func lines(g orb.Geometry) []orb.LineString {
	switch g := g.(type) {
	case orb.LineString:
		return []orb.LineString{g}
	case orb.MultiLineString:
		return g
	case orb.Collection:
		var out []orb.LineString
		for _, c := range g {
			out = append(out, lines(c)...)
		}
		return out
	}
	return nil
}

func polygons(g orb.Geometry) []orb.Polygon {
	switch g := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return g
	case orb.Bound:
		return []orb.Polygon{g.ToPolygon()}
	case orb.Collection:
		var out []orb.Polygon
		for _, c := range g {
			out = append(out, polygons(c)...)
		}
		return out
	}
	return nil
}

// anchors returns where a label or marker for g is placed: every point of a
// point geometry, the middle vertex of each line and the centroid of each
// polygon.
func anchors(g orb.Geometry) []orb.Point {
	out := points(g)
	for _, ls := range lines(g) {
		if len(ls) > 0 {
			out = append(out, ls[len(ls)/2])
		}
	}
	for _, p := range polygons(g) {
		if len(p) > 0 && len(p[0]) > 0 {
			c, _ := planar.CentroidArea(p)
			out = append(out, c)
		}
	}
	return out
}
