// Package tile defines the quad-tree tile address shared by loaders, caches and
// the render pipeline.
package tile

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// EarthCircumference is the web mercator world width in meters.
const EarthCircumference = 2 * math.Pi * 6378137

// Index represents tile coordinates in the XYZ scheme (Tiled web map).
// It is comparable and can be used as a map key.
type Index struct {
	X uint32
	Y uint32
	Z maptile.Zoom
}

func New(z maptile.Zoom, x, y uint32) Index {
	return Index{X: x, Y: y, Z: z}
}

func FromMaptile(t maptile.Tile) Index {
	return Index{X: t.X, Y: t.Y, Z: t.Z}
}

func (i Index) Maptile() maptile.Tile {
	return maptile.New(i.X, i.Y, i.Z)
}

func (i Index) Valid() bool {
	return i.Z < 32 && i.X < (1<<i.Z) && i.Y < (1<<i.Z)
}

// Bound returns the WGS84 bounding box covered by the tile.
func (i Index) Bound() orb.Bound {
	return i.Maptile().Bound()
}

// Resolution returns web mercator meters per pixel for a tile of tileSize
// pixels at this zoom level.
func (i Index) Resolution(tileSize int) float64 {
	if tileSize <= 0 {
		tileSize = 256
	}
	return EarthCircumference / (float64(tileSize) * math.Exp2(float64(i.Z)))
}

func (i Index) String() string {
	return fmt.Sprintf("%d/%d/%d", i.Z, i.X, i.Y)
}
