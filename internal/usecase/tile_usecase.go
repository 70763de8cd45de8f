package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/raster"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/urltemplate"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/vectortile"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/config"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

var ErrTooManyTiles = errors.New("too many tiles requested")

type LayerSummary struct {
	Name     string `json:"name"`
	Extent   uint32 `json:"extent"`
	Features int    `json:"features"`
}

type TileSummary struct {
	Tile   string         `json:"tile"`
	Kind   string         `json:"kind"`
	Layers []LayerSummary `json:"layers,omitempty"`
	Width  int            `json:"width,omitempty"`
	Height int            `json:"height,omitempty"`
}

type SourceConfig struct {
	URLTemplate string                 `json:"url_template"`
	Parameters  urltemplate.Parameters `json:"parameters"`
	OfflineMode bool                   `json:"offline_mode"`
}

type PrefetchReport struct {
	Requested int               `json:"requested"`
	Loaded    int               `json:"loaded"`
	Missing   int               `json:"missing"`
	Failed    int               `json:"failed"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type rawTileLoader interface {
	LoadRaw(ctx context.Context, idx tile.Index) ([]byte, error)
	OfflineMode() bool
	SetOfflineMode(offline bool)
}

// TileUseCase serves one configured tile source: summaries of decoded tiles,
// raw bytes, runtime source configuration and bulk prefetch.
type TileUseCase struct {
	kind     string
	raw      rawTileLoader
	source   *urltemplate.Dynamic
	summary  func(ctx context.Context, idx tile.Index) (*TileSummary, error)
	prefetch func(ctx context.Context, indices []tile.Index, concurrency int) []PrefetchResult
	cfg      config.Prefetch
	logger   logger.Logger
}

func NewVectorTileUseCase(l *DynamicVectorTileLoader, loader TileLoader[*vectortile.Tile], cfg config.Prefetch, log logger.Logger) *TileUseCase {
	return newTileUseCase(KindVector, l.VectorTileLoader, l.Dynamic, loader, summarizeVector, cfg, log)
}

func NewRasterTileUseCase(l *DynamicRasterTileLoader, loader TileLoader[*raster.Image], cfg config.Prefetch, log logger.Logger) *TileUseCase {
	return newTileUseCase(KindRaster, l.RasterTileLoader, l.Dynamic, loader, summarizeRaster, cfg, log)
}

func newTileUseCase[T any](
	kind string,
	raw rawTileLoader,
	source *urltemplate.Dynamic,
	loader TileLoader[T],
	summarize func(idx tile.Index, v T) *TileSummary,
	cfg config.Prefetch,
	l logger.Logger,
) *TileUseCase {
	return &TileUseCase{
		kind:   kind,
		raw:    raw,
		source: source,
		summary: func(ctx context.Context, idx tile.Index) (*TileSummary, error) {
			v, err := loader.Load(ctx, idx)
			if err != nil {
				return nil, err
			}
			return summarize(idx, v), nil
		},
		prefetch: func(ctx context.Context, indices []tile.Index, concurrency int) []PrefetchResult {
			return Prefetch(ctx, loader, indices, concurrency)
		},
		cfg:    cfg,
		logger: logger.OrNop(l),
	}
}

func summarizeVector(idx tile.Index, vt *vectortile.Tile) *TileSummary {
	s := &TileSummary{Tile: idx.String(), Kind: KindVector, Layers: make([]LayerSummary, 0, len(vt.Layers))}
	for _, l := range vt.Layers {
		s.Layers = append(s.Layers, LayerSummary{Name: l.Name, Extent: l.Extent, Features: len(l.Features)})
	}
	sort.Slice(s.Layers, func(i, j int) bool { return s.Layers[i].Name < s.Layers[j].Name })
	return s
}

func summarizeRaster(idx tile.Index, img *raster.Image) *TileSummary {
	return &TileSummary{Tile: idx.String(), Kind: KindRaster, Width: img.Width, Height: img.Height}
}

func (uc *TileUseCase) Kind() string {
	return uc.kind
}

func (uc *TileUseCase) Tile(ctx context.Context, idx tile.Index) (*TileSummary, error) {
	uc.logger.Debug("tile summary", "tile", idx.String())
	return uc.summary(ctx, idx)
}

func (uc *TileUseCase) RawTile(ctx context.Context, idx tile.Index) ([]byte, error) {
	uc.logger.Debug("raw tile", "tile", idx.String())
	return uc.raw.LoadRaw(ctx, idx)
}

func (uc *TileUseCase) Source() SourceConfig {
	return SourceConfig{
		URLTemplate: uc.source.URLTemplate(),
		Parameters:  uc.source.Parameters(),
		OfflineMode: uc.raw.OfflineMode(),
	}
}

// UpdateSource replaces the template and parameters. A nil offline leaves the
// offline mode unchanged.
func (uc *TileUseCase) UpdateSource(template string, params urltemplate.Parameters, offline *bool) SourceConfig {
	uc.source.UpdateURLTemplate(template)
	uc.source.UpdateParameters(params)
	if offline != nil {
		uc.raw.SetOfflineMode(*offline)
	}
	uc.logger.Info("tile source updated", "url_template", template, "parameters", len(params), "offline", uc.raw.OfflineMode())
	return uc.Source()
}

func (uc *TileUseCase) AddParameter(key, value string) SourceConfig {
	uc.source.AddParameter(key, value)
	return uc.Source()
}

func (uc *TileUseCase) RemoveParameter(key string) SourceConfig {
	uc.source.RemoveParameter(key)
	return uc.Source()
}

func (uc *TileUseCase) ClearParameters() SourceConfig {
	uc.source.ClearParameters()
	return uc.Source()
}

// Prefetch loads every tile covering b between minZoom and maxZoom into the
// cache. Individual failures are counted, not returned.
func (uc *TileUseCase) Prefetch(ctx context.Context, b orb.Bound, minZoom, maxZoom maptile.Zoom) (*PrefetchReport, error) {
	n := tile.Count(b, minZoom, maxZoom)
	if uc.cfg.MaxTiles > 0 && n > uc.cfg.MaxTiles {
		return nil, fmt.Errorf("%w: %d tiles, limit is %d", ErrTooManyTiles, n, uc.cfg.MaxTiles)
	}

	indices := tile.Range(b, minZoom, maxZoom)
	uc.logger.Info("prefetching tiles", "count", len(indices), "min_zoom", minZoom, "max_zoom", maxZoom)

	report := &PrefetchReport{Requested: len(indices)}
	for _, r := range uc.prefetch(ctx, indices, uc.cfg.Concurrency) {
		switch {
		case r.Err == nil:
			report.Loaded++
			continue
		case errors.Is(r.Err, ErrDoesNotExist):
			report.Missing++
		default:
			report.Failed++
		}
		if report.Errors == nil {
			report.Errors = make(map[string]string)
		}
		report.Errors[r.Index.String()] = r.Err.Error()
	}

	uc.logger.Info("prefetch finished", "loaded", report.Loaded, "missing", report.Missing, "failed", report.Failed)
	return report, nil
}
