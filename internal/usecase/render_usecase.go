package usecase

import (
	"context"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/render"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/symbol"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/vectortile"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
	"github.com/paulmach/orb/project"
)

// RenderUseCase turns vector tiles into render batches using a style.
type RenderUseCase struct {
	loader   TileLoader[*vectortile.Tile]
	style    *symbol.Style
	renderer render.Renderer
	tileSize int
	logger   logger.Logger
}

func NewRenderUseCase(loader TileLoader[*vectortile.Tile], style *symbol.Style, renderer render.Renderer, tileSize int, l logger.Logger) *RenderUseCase {
	if tileSize <= 0 {
		tileSize = 256
	}
	return &RenderUseCase{
		loader:   loader,
		style:    style,
		renderer: renderer,
		tileSize: tileSize,
		logger:   logger.OrNop(l),
	}
}

// RenderTile loads idx and renders its features in web mercator meters. Load
// failures are returned unchanged so the caller can draw a placeholder.
func (uc *RenderUseCase) RenderTile(ctx context.Context, idx tile.Index) (*render.Batch, error) {
	vt, err := uc.loader.Load(ctx, idx)
	if err != nil {
		uc.logger.Debug("tile not rendered", "tile", idx.String(), "error", err)
		return nil, err
	}

	// loaded tiles may be shared with other callers
	vt = vt.Clone()
	vt.ProjectToWGS84(idx)

	bundle := render.NewBundle()
	minResolution := idx.Resolution(uc.tileSize)

	for _, layer := range vt.Layers {
		sym := uc.style.SymbolFor(layer.Name)
		if sym == nil {
			continue
		}
		for _, f := range layer.Features {
			if f.Geometry == nil {
				continue
			}
			geom := project.Geometry(f.Geometry, project.WGS84.ToMercator)
			sym.Render(f, geom, minResolution, bundle)
		}
	}

	batch, err := bundle.Submit(ctx, uc.renderer)
	if err != nil {
		uc.logger.Error("failed to submit render batch", "tile", idx.String(), "error", err)
		return nil, err
	}

	uc.logger.Debug("tile rendered", "tile", idx.String(), "world", batch.Stats.World(), "screen", batch.Stats.Screen())
	return batch, nil
}
