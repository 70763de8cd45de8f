package symbol

import (
	"fmt"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/render"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/vectortile"
	"github.com/paulmach/orb"
)

type TextProvider[F any] interface {
	Text(feature F) string
}

type TextFunc[F any] func(feature F) string

func (f TextFunc[F]) Text(feature F) string {
	return f(feature)
}

// StaticText labels every feature with the same text.
func StaticText[F any](text string) TextProvider[F] {
	return TextFunc[F](func(F) string { return text })
}

// FeatureText reads the label from a vector tile feature property. Numbers
// and booleans are formatted; missing properties give no label.
func FeatureText(property string) TextProvider[*vectortile.Feature] {
	return TextFunc[*vectortile.Feature](func(f *vectortile.Feature) string {
		if f == nil {
			return ""
		}
		switch v := f.Properties[property].(type) {
		case nil:
			return ""
		case string:
			return v
		case float64:
			return fmt.Sprintf("%g", v)
		default:
			return fmt.Sprint(v)
		}
	})
}

// LabelSymbol places text at every anchor of the geometry. Screen labels keep
// their pixel size; with AttachToMap they scale with the map.
type LabelSymbol[F any] struct {
	Text        TextProvider[F]
	Style       render.TextStyle
	Offset      orb.Point
	AttachToMap bool
}

func (s LabelSymbol[F]) Render(feature F, geometry orb.Geometry, _ float64, bundle *render.Bundle) {
	text := s.Text.Text(feature)
	if text == "" {
		return
	}
	for _, p := range anchors(geometry) {
		bundle.AddLabel(p, text, s.Style, s.Offset, s.AttachToMap)
	}
}
