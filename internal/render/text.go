package render

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextMeasurer returns the pixel size of a piece of text set at size points.
type TextMeasurer interface {
	Measure(text string, size float64) (width, height float64)
}

// FontMeasurer measures text with an OpenType font at 72 DPI, so one point is
// one pixel. Faces are cached per size.
type FontMeasurer struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

func NewFontMeasurer(ttf []byte) (*FontMeasurer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

var defaultMeasurer = sync.OnceValue(func() *FontMeasurer {
	m, err := NewFontMeasurer(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return m
})

// DefaultMeasurer measures with the Go Regular font.
func DefaultMeasurer() *FontMeasurer {
	return defaultMeasurer()
}

func (m *FontMeasurer) Measure(text string, size float64) (float64, float64) {
	if text == "" || size <= 0 {
		return 0, 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(size)
	if err != nil {
		return 0, 0
	}

	metrics := face.Metrics()
	lineHeight := metrics.Height
	if lineHeight == 0 {
		lineHeight = metrics.Ascent + metrics.Descent
	}

	var width fixed.Int26_6
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line))
	}

	return toFloat(width), toFloat(lineHeight) * float64(len(lines))
}

func (m *FontMeasurer) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
