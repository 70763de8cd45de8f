package usecase

import (
	"github.com/jaennil/guide_helper/backend/mapcore/internal/platform"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/repository/cache"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/urltemplate"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/vectortile"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
)

type VectorTileLoader struct {
	*loader[*vectortile.Tile]
}

var _ TileLoader[*vectortile.Tile] = (*VectorTileLoader)(nil)

func NewVectorTileLoader(source URLSource, p platform.Platform, c cache.TileCache, opts LoaderOptions, l logger.Logger) *VectorTileLoader {
	return &VectorTileLoader{
		loader: newLoader(KindVector, source, p, c, vectortile.Decode, opts, l),
	}
}

// DynamicVectorTileLoader is a VectorTileLoader whose URL template and query
// parameters can be changed while loads are in flight. Every load uses one
// consistent snapshot of the configuration.
type DynamicVectorTileLoader struct {
	*VectorTileLoader
	*urltemplate.Dynamic
}

func NewDynamicVectorTileLoader(template string, params urltemplate.Parameters, p platform.Platform, c cache.TileCache, opts LoaderOptions, l logger.Logger) *DynamicVectorTileLoader {
	d := urltemplate.NewDynamic(template, params...)
	return &DynamicVectorTileLoader{
		VectorTileLoader: NewVectorTileLoader(d, p, c, opts, l),
		Dynamic:          d,
	}
}
