package render

import (
	"image"
	"image/color"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/raster"
	"github.com/paulmach/orb"
)

type PointShape int

const (
	ShapeCircle PointShape = iota
	ShapeSquare
)

func (s PointShape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	default:
		return "unknown"
	}
}

// PointPaint sizes are in pixels; the renderer scales them by the view's
// meters-per-pixel.
type PointPaint struct {
	Shape        PointShape
	Color        color.NRGBA
	Size         float64
	OutlineColor color.NRGBA
	OutlineWidth float64
}

type LinePaint struct {
	Color  color.NRGBA
	Width  float64
	Offset float64
}

type PolygonPaint struct {
	Color color.NRGBA
}

type ImagePaint struct {
	Opacity uint8
}

type HorizontalAlignment int

const (
	AlignCenter HorizontalAlignment = iota
	AlignLeft
	AlignRight
)

type VerticalAlignment int

const (
	AlignMiddle VerticalAlignment = iota
	AlignTop
	AlignBottom
)

type TextStyle struct {
	FontSize     float64
	Color        color.NRGBA
	Horizontal   HorizontalAlignment
	Vertical     VerticalAlignment
	OutlineColor color.NRGBA
	OutlineWidth float64
}

// MarkerStyle describes a screen-anchored image. Size overrides the image's own
// size multiplied by Scale. Anchor is the fraction of the box placed on the
// marker position: {0.5, 1} puts the bottom center on it.
type MarkerStyle struct {
	Image  *raster.Image
	Size   image.Point
	Scale  float64
	Anchor orb.Point
}

func (s MarkerStyle) size() (float64, float64) {
	if s.Size.X > 0 && s.Size.Y > 0 {
		return float64(s.Size.X), float64(s.Size.Y)
	}
	if s.Image == nil {
		return 0, 0
	}
	scale := s.Scale
	if scale == 0 {
		scale = 1
	}
	return float64(s.Image.Width) * scale, float64(s.Image.Height) * scale
}
