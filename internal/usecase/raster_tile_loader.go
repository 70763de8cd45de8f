package usecase

import (
	"github.com/jaennil/guide_helper/backend/mapcore/internal/platform"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/raster"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/repository/cache"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/urltemplate"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
)

type RasterTileLoader struct {
	*loader[*raster.Image]
}

var _ TileLoader[*raster.Image] = (*RasterTileLoader)(nil)

func NewRasterTileLoader(source URLSource, p platform.Platform, c cache.TileCache, opts LoaderOptions, l logger.Logger) *RasterTileLoader {
	return &RasterTileLoader{
		loader: newLoader(KindRaster, source, p, c, decodeRaster(opts.TileSize), opts, l),
	}
}

// decodeRaster scales decoded tiles to size x size when the source serves a
// different tile size.
func decodeRaster(size int) func([]byte) (*raster.Image, error) {
	return func(data []byte) (*raster.Image, error) {
		img, err := raster.Decode(data)
		if err != nil {
			return nil, err
		}
		if size > 0 && (img.Width != size || img.Height != size) {
			img = img.Resize(size, size)
		}
		return img, nil
	}
}

type DynamicRasterTileLoader struct {
	*RasterTileLoader
	*urltemplate.Dynamic
}

func NewDynamicRasterTileLoader(template string, params urltemplate.Parameters, p platform.Platform, c cache.TileCache, opts LoaderOptions, l logger.Logger) *DynamicRasterTileLoader {
	d := urltemplate.NewDynamic(template, params...)
	return &DynamicRasterTileLoader{
		RasterTileLoader: NewRasterTileLoader(d, p, c, opts, l),
		Dynamic:          d,
	}
}
