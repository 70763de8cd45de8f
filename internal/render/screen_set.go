package render

import (
	"github.com/jaennil/guide_helper/backend/mapcore/internal/raster"
	"github.com/paulmach/orb"
)

type ScreenKind int

const (
	ScreenLabel ScreenKind = iota
	ScreenMarker
)

func (k ScreenKind) String() string {
	if k == ScreenMarker {
		return "marker"
	}
	return "label"
}

// ScreenSet is drawn at a fixed pixel size around the projected Anchor,
// independent of zoom. Box is in pixels relative to the anchor's screen
// position, with y growing downwards.
type ScreenSet struct {
	Kind   ScreenKind
	Anchor orb.Point
	Box    orb.Bound

	// set for ScreenLabel
	Text  string
	Style TextStyle

	// set for ScreenMarker
	Image *raster.Image
}

func (s *ScreenSet) Width() float64 {
	return s.Box.Max.X() - s.Box.Min.X()
}

func (s *ScreenSet) Height() float64 {
	return s.Box.Max.Y() - s.Box.Min.Y()
}

// alignedBox places a w x h box relative to the anchor according to the text
// alignment, shifted by offset.
func alignedBox(w, h float64, style TextStyle, offset orb.Point) orb.Bound {
	var x, y float64
	switch style.Horizontal {
	case AlignLeft:
		x = 0
	case AlignRight:
		x = -w
	default:
		x = -w / 2
	}
	switch style.Vertical {
	case AlignTop:
		y = 0
	case AlignBottom:
		y = -h
	default:
		y = -h / 2
	}

	x += offset.X()
	y += offset.Y()
	return orb.Bound{Min: orb.Point{x, y}, Max: orb.Point{x + w, y + h}}
}

func anchoredBox(w, h float64, anchor orb.Point) orb.Bound {
	x := -anchor.X() * w
	y := -anchor.Y() * h
	return orb.Bound{Min: orb.Point{x, y}, Max: orb.Point{x + w, y + h}}
}
