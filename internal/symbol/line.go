package symbol

import (
	"image/color"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/render"
	"github.com/paulmach/orb"
)

// LineSymbol strokes lines and the rings of polygons.
type LineSymbol[F any] struct {
	Color  color.NRGBA
	Width  float64
	Offset float64
}

func (s LineSymbol[F]) paint() render.LinePaint {
	return render.LinePaint{Color: s.Color, Width: s.Width, Offset: s.Offset}
}

func (s LineSymbol[F]) Render(_ F, geometry orb.Geometry, minResolution float64, bundle *render.Bundle) {
	paint := s.paint()
	for _, ls := range lines(geometry) {
		bundle.AddLine(ls, paint, minResolution)
	}
	for _, p := range polygons(geometry) {
		for _, r := range p {
			bundle.AddRing(r, paint, minResolution)
		}
	}
}

// PolygonSymbol fills polygons and, when StrokeWidth is positive, outlines
// every ring.
type PolygonSymbol[F any] struct {
	Fill        color.NRGBA
	StrokeColor color.NRGBA
	StrokeWidth float64
}

func (s PolygonSymbol[F]) Render(_ F, geometry orb.Geometry, minResolution float64, bundle *render.Bundle) {
	fill := render.PolygonPaint{Color: s.Fill}
	stroke := render.LinePaint{Color: s.StrokeColor, Width: s.StrokeWidth}

	for _, p := range polygons(geometry) {
		bundle.AddPolygon(p, fill, minResolution)
		if s.StrokeWidth <= 0 {
			continue
		}
		for _, r := range p {
			bundle.AddRing(r, stroke, minResolution)
		}
	}
}
