// Package vectortile decodes Mapbox Vector Tile payloads into layers of
// features with orb geometries in tile extent space.
package vectortile

import (
	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
)

// DefaultExtent is used for layers that do not declare one.
const DefaultExtent = 4096

type Tile struct {
	Layers []*Layer
}

type Layer struct {
	Name     string
	Version  uint32
	Extent   uint32
	Features []*Feature
}

type Feature struct {
	ID         any
	Geometry   orb.Geometry
	Properties map[string]any
}

// Layer returns the first layer with the given name, or nil.
func (t *Tile) Layer(name string) *Layer {
	for _, l := range t.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

func (t *Tile) FeatureCount() int {
	n := 0
	for _, l := range t.Layers {
		n += len(l.Features)
	}
	return n
}

// ProjectToWGS84 converts every layer from extent space to longitude/latitude
// within the bounds of idx.
func (t *Tile) ProjectToWGS84(idx tile.Index) {
	for _, l := range t.Layers {
		l.ProjectToWGS84(idx)
	}
}

func (l *Layer) ProjectToWGS84(idx tile.Index) {
	ml := l.toMVT()
	ml.ProjectToWGS84(idx.Maptile())
	for i, f := range ml.Features {
		l.Features[i].Geometry = f.Geometry
	}
}

func (l *Layer) toMVT() *mvt.Layer {
	features := make([]*geojson.Feature, len(l.Features))
	for i, f := range l.Features {
		features[i] = &geojson.Feature{ID: f.ID, Geometry: f.Geometry, Properties: f.Properties}
	}
	return &mvt.Layer{
		Name:     l.Name,
		Version:  l.Version,
		Extent:   l.Extent,
		Features: features,
	}
}

// Clone returns a copy with its own geometries. Properties are shared.
func (t *Tile) Clone() *Tile {
	c := &Tile{Layers: make([]*Layer, len(t.Layers))}
	for i, l := range t.Layers {
		cl := *l
		cl.Features = make([]*Feature, len(l.Features))
		for j, f := range l.Features {
			cf := *f
			if f.Geometry != nil {
				cf.Geometry = orb.Clone(f.Geometry)
			}
			cl.Features[j] = &cf
		}
		c.Layers[i] = &cl
	}
	return c
}

// PropertyString returns the named property when it is a string.
func (f *Feature) PropertyString(key string) (string, bool) {
	v, ok := f.Properties[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
