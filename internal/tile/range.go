package tile

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

var ErrInvalid = errors.New("invalid tile index")

// MaxZoom is the deepest zoom level accepted from user input.
const MaxZoom = 24

// Parse reads a tile index from decimal path components and checks that it
// addresses an existing tile.
func Parse(z, x, y string) (Index, error) {
	zv, err := strconv.ParseUint(z, 10, 32)
	if err != nil {
		return Index{}, fmt.Errorf("%w: z should be integer", ErrInvalid)
	}
	xv, err := strconv.ParseUint(x, 10, 32)
	if err != nil {
		return Index{}, fmt.Errorf("%w: x should be integer", ErrInvalid)
	}
	yv, err := strconv.ParseUint(y, 10, 32)
	if err != nil {
		return Index{}, fmt.Errorf("%w: y should be integer", ErrInvalid)
	}
	if zv > MaxZoom {
		return Index{}, fmt.Errorf("%w: z should be at most %d", ErrInvalid, MaxZoom)
	}

	idx := New(maptile.Zoom(zv), uint32(xv), uint32(yv))
	if !idx.Valid() {
		return Index{}, fmt.Errorf("%w: %s is outside the tile grid", ErrInvalid, idx)
	}
	return idx, nil
}

// Count returns how many tiles cover b at zoom levels minZoom..maxZoom.
func Count(b orb.Bound, minZoom, maxZoom maptile.Zoom) int {
	n := 0
	for z := minZoom; z <= maxZoom; z++ {
		lo, hi := corners(b, z)
		n += int(hi.X-lo.X+1) * int(hi.Y-lo.Y+1)
	}
	return n
}

// Range lists the tiles covering b at zoom levels minZoom..maxZoom, ordered by
// zoom, then row, then column.
func Range(b orb.Bound, minZoom, maxZoom maptile.Zoom) []Index {
	out := make([]Index, 0, Count(b, minZoom, maxZoom))
	for z := minZoom; z <= maxZoom; z++ {
		lo, hi := corners(b, z)
		for y := lo.Y; y <= hi.Y; y++ {
			for x := lo.X; x <= hi.X; x++ {
				out = append(out, New(z, x, y))
			}
		}
	}
	return out
}

// corners returns the north-west and south-east tiles of b at zoom z.
func corners(b orb.Bound, z maptile.Zoom) (maptile.Tile, maptile.Tile) {
	nw := maptile.At(orb.Point{b.Min.Lon(), b.Max.Lat()}, z)
	se := maptile.At(orb.Point{b.Max.Lon(), b.Min.Lat()}, z)
	return clamp(nw), clamp(se)
}

// clamp keeps tiles computed at lon 180 or the southern mercator limit on the
// grid.
func clamp(t maptile.Tile) maptile.Tile {
	last := uint32(1)<<t.Z - 1
	t.X = min(t.X, last)
	t.Y = min(t.Y, last)
	return t
}
