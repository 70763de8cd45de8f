package vectortile

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/paulmach/orb/encoding/mvt"
)

// ErrMalformed is returned for payloads that are not a valid vector tile.
var ErrMalformed = errors.New("malformed vector tile")

var gzipMagic = []byte{0x1f, 0x8b}

// Decode parses an MVT payload. Gzip-compressed payloads are inflated first.
// On failure no partial tile is returned.
func Decode(data []byte) (t *Tile, err error) {
	defer func() {
		if r := recover(); r != nil {
			t = nil
			err = fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	if bytes.HasPrefix(data, gzipMagic) {
		data, err = gunzip(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	if err := validate(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	layers, err := mvt.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return fromMVT(layers), nil
}

func gunzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

func fromMVT(layers mvt.Layers) *Tile {
	t := &Tile{Layers: make([]*Layer, 0, len(layers))}
	for _, ml := range layers {
		extent := ml.Extent
		if extent == 0 {
			extent = DefaultExtent
		}

		l := &Layer{
			Name:     ml.Name,
			Version:  ml.Version,
			Extent:   extent,
			Features: make([]*Feature, 0, len(ml.Features)),
		}
		for _, f := range ml.Features {
			l.Features = append(l.Features, &Feature{
				ID:         f.ID,
				Geometry:   f.Geometry,
				Properties: f.Properties,
			})
		}
		t.Layers = append(t.Layers, l)
	}
	return t
}
