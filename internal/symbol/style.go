package symbol

import (
	"image/color"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/render"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/vectortile"
	"github.com/paulmach/orb"
)

type FeatureSymbol = Symbol[*vectortile.Feature]

// Style assigns a symbol to each vector tile layer. Layers without an entry use
// Default; when Default is nil their features are skipped.
type Style struct {
	Layers  map[string]FeatureSymbol
	Default FeatureSymbol
}

func (s *Style) SymbolFor(layer string) FeatureSymbol {
	if sym, ok := s.Layers[layer]; ok {
		return sym
	}
	return s.Default
}

var (
	water    = color.NRGBA{R: 0xaa, G: 0xd3, B: 0xdf, A: 0xff}
	park     = color.NRGBA{R: 0xc8, G: 0xfa, B: 0xcc, A: 0xff}
	building = color.NRGBA{R: 0xd9, G: 0xd0, B: 0xc9, A: 0xff}
	road     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	casing   = color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}
	poi      = color.NRGBA{R: 0xe3, G: 0x4a, B: 0x33, A: 0xff}
	ink      = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// DefaultStyle covers the common OpenMapTiles layer names.
func DefaultStyle() *Style {
	name := FeatureText("name")
	labels := render.TextStyle{FontSize: 12, Color: ink, OutlineColor: road, OutlineWidth: 1}

	return &Style{
		Layers: map[string]FeatureSymbol{
			"water":    PolygonSymbol[*vectortile.Feature]{Fill: water},
			"park":     PolygonSymbol[*vectortile.Feature]{Fill: park},
			"building": PolygonSymbol[*vectortile.Feature]{Fill: building, StrokeColor: casing, StrokeWidth: 0.5},
			"transportation": Composite[*vectortile.Feature]{
				LineSymbol[*vectortile.Feature]{Color: casing, Width: 3},
				LineSymbol[*vectortile.Feature]{Color: road, Width: 2},
			},
			"transportation_name": LabelSymbol[*vectortile.Feature]{Text: name, Style: labels, AttachToMap: true},
			"place":               LabelSymbol[*vectortile.Feature]{Text: name, Style: labels},
			"poi": Composite[*vectortile.Feature]{
				CirclePointSymbol[*vectortile.Feature]{Color: poi, Size: 6, OutlineColor: road, OutlineWidth: 1},
				LabelSymbol[*vectortile.Feature]{Text: name, Style: labels, Offset: orb.Point{0, 8}},
			},
		},
		Default: Composite[*vectortile.Feature]{
			CirclePointSymbol[*vectortile.Feature]{Color: ink, Size: 3},
			LineSymbol[*vectortile.Feature]{Color: ink, Width: 1},
			PolygonSymbol[*vectortile.Feature]{Fill: building},
		},
	}
}
