package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	v1 "github.com/jaennil/guide_helper/backend/mapcore/internal/infrastructure/http/v1"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/infrastructure/http/v1/handler"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/platform"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/raster"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/render"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/repository/cache"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/symbol"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/urltemplate"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/usecase"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/vectortile"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/config"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/http_server"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/telemetry"
)

func Run(cfg *config.Config) {
	l := logger.NewZapLogger(cfg.Logger)
	defer l.Sync()

	l.Info("app config", "cfg", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = logger.WithLogger(ctx, l)

	// Initialize OpenTelemetry if enabled
	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.InitTracer(telemetry.Config{
			ServiceName:    cfg.Telemetry.ServiceName,
			ServiceVersion: cfg.Telemetry.ServiceVersion,
			Environment:    cfg.Telemetry.Environment,
			OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		}, l)
		if err != nil {
			l.Fatal("failed to initialize telemetry", "error", err)
		}
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				l.Error("failed to shutdown telemetry", "error", err)
			}
		}()
		l.Info("telemetry initialized", "service", cfg.Telemetry.ServiceName)
	}

	cacheCfg := cfg.Cache
	if cacheCfg.Namespace == "" {
		cacheCfg.Namespace = cfg.Source.Name
	}

	tileCache, closer, err := cache.NewCache(cacheCfg, cfg.Redis, l)
	if err != nil {
		l.Fatal("failed to initialize tile cache", "type", cfg.Cache.Type, "error", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			l.Error("failed to close tile cache", "error", err)
		}
	}()

	p := platform.NewHTTPPlatform(cfg.Platform, l)

	tileUseCase, renderUseCase, err := newUseCases(cfg, p, tileCache, l)
	if err != nil {
		l.Fatal("failed to initialize tile source", "error", err)
	}

	validate := validator.New()
	h, err := handler.NewHandler(validate, tileUseCase, renderUseCase)
	if err != nil {
		l.Fatal("failed to initialize http handler", "error", err)
	}
	router := v1.NewRouter(h, l, cfg.Telemetry.Enabled, cfg.Telemetry.ServiceName)

	httpServer := http_server.NewServer(ctx, cfg.HTTP.Server, router)

	go func() {
		l.Info("starting http server...", "address", httpServer.Addr, "source", cfg.Source.Name, "kind", cfg.Source.Kind)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	l.Info("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	l.Info("shutting down http server...", "address", httpServer.Addr)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		l.Error("http server shutdown failed", "error", err)
	} else {
		l.Info("http server shutdown completed")
	}

	l.Info("application shutdown completed")
}

// newUseCases builds the loader chain for the configured source. Render
// bundles are only available for vector sources, so renderUseCase is nil for
// raster ones.
func newUseCases(cfg *config.Config, p platform.Platform, c cache.TileCache, l logger.Logger) (*usecase.TileUseCase, *usecase.RenderUseCase, error) {
	params := urltemplate.ParsePairs(cfg.Source.Parameters)
	opts := usecase.LoaderOptions{OfflineMode: cfg.Source.OfflineMode, TileSize: cfg.Source.TileSize}

	switch cfg.Source.Kind {
	case usecase.KindVector:
		dl := usecase.NewDynamicVectorTileLoader(cfg.Source.URLTemplate, params, p, c, opts, l)
		var loader usecase.TileLoader[*vectortile.Tile] = dl
		if cfg.Source.Coalesce {
			loader = usecase.Coalesce[*vectortile.Tile](dl)
		}
		tileUseCase := usecase.NewVectorTileUseCase(dl, loader, cfg.Prefetch, l)
		renderUseCase := usecase.NewRenderUseCase(loader, symbol.DefaultStyle(), render.NewStatsRenderer(l), cfg.Source.TileSize, l)
		return tileUseCase, renderUseCase, nil
	case usecase.KindRaster:
		dl := usecase.NewDynamicRasterTileLoader(cfg.Source.URLTemplate, params, p, c, opts, l)
		var loader usecase.TileLoader[*raster.Image] = dl
		if cfg.Source.Coalesce {
			loader = usecase.Coalesce[*raster.Image](dl)
		}
		return usecase.NewRasterTileUseCase(dl, loader, cfg.Prefetch, l), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}
