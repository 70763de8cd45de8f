package symbol

import (
	"fmt"
	"image/color"
	"os"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/raster"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/render"
	"github.com/paulmach/orb"
)

// CirclePointSymbol draws a circle of Size pixels at every point.
type CirclePointSymbol[F any] struct {
	Color        color.NRGBA
	Size         float64
	OutlineColor color.NRGBA
	OutlineWidth float64
}

func (s CirclePointSymbol[F]) Render(_ F, geometry orb.Geometry, _ float64, bundle *render.Bundle) {
	paint := render.PointPaint{
		Shape:        render.ShapeCircle,
		Color:        s.Color,
		Size:         s.Size,
		OutlineColor: s.OutlineColor,
		OutlineWidth: s.OutlineWidth,
	}
	for _, p := range points(geometry) {
		bundle.AddPoint(p, paint)
	}
}

type SquarePointSymbol[F any] struct {
	Color color.NRGBA
	Size  float64
}

func (s SquarePointSymbol[F]) Render(_ F, geometry orb.Geometry, _ float64, bundle *render.Bundle) {
	paint := render.PointPaint{Shape: render.ShapeSquare, Color: s.Color, Size: s.Size}
	for _, p := range points(geometry) {
		bundle.AddPoint(p, paint)
	}
}

// ImagePointSymbol places a screen-anchored image marker at every point.
type ImagePointSymbol[F any] struct {
	Style render.MarkerStyle
}

// NewImagePointSymbol decodes an encoded image. anchor is the fraction of the
// image placed on the point and scale multiplies its pixel size.
func NewImagePointSymbol[F any](data []byte, anchor orb.Point, scale float64) (*ImagePointSymbol[F], error) {
	img, err := raster.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load marker image: %w", err)
	}
	return &ImagePointSymbol[F]{
		Style: render.MarkerStyle{Image: img, Anchor: anchor, Scale: scale},
	}, nil
}

func NewImagePointSymbolFromPath[F any](path string, anchor orb.Point, scale float64) (*ImagePointSymbol[F], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read marker image: %w", err)
	}
	return NewImagePointSymbol[F](data, anchor, scale)
}

func (s *ImagePointSymbol[F]) Render(_ F, geometry orb.Geometry, _ float64, bundle *render.Bundle) {
	for _, p := range points(geometry) {
		bundle.AddMarker(p, s.Style)
	}
}

// TextMarkerSymbol draws a square background with text on top at every point.
// Both scale with the map.
type TextMarkerSymbol[F any] struct {
	Text       TextProvider[F]
	Style      render.TextStyle
	Background color.NRGBA
	Padding    float64
}

func (s TextMarkerSymbol[F]) Render(feature F, geometry orb.Geometry, _ float64, bundle *render.Bundle) {
	text := s.Text.Text(feature)
	if text == "" {
		return
	}

	background := render.PointPaint{
		Shape: render.ShapeSquare,
		Color: s.Background,
		Size:  s.Style.FontSize + 2*s.Padding,
	}
	for _, p := range points(geometry) {
		bundle.AddPoint(p, background)
		bundle.AddLabel(p, text, s.Style, orb.Point{}, true)
	}
}
