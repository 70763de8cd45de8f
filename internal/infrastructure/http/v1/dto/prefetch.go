package dto

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

type PrefetchRequest struct {
	MinLon  float64 `json:"min_lon" validate:"gte=-180,lte=180"`
	MinLat  float64 `json:"min_lat" validate:"gte=-85.0511,lte=85.0511"`
	MaxLon  float64 `json:"max_lon" validate:"gte=-180,lte=180,gtefield=MinLon"`
	MaxLat  float64 `json:"max_lat" validate:"gte=-85.0511,lte=85.0511,gtefield=MinLat"`
	MinZoom uint32  `json:"min_zoom" validate:"lte=24"`
	MaxZoom uint32  `json:"max_zoom" validate:"lte=24,gtefield=MinZoom"`
}

func (r PrefetchRequest) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.MinLon, r.MinLat},
		Max: orb.Point{r.MaxLon, r.MaxLat},
	}
}

func (r PrefetchRequest) Zooms() (maptile.Zoom, maptile.Zoom) {
	return maptile.Zoom(r.MinZoom), maptile.Zoom(r.MaxZoom)
}
