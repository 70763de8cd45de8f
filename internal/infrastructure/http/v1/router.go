package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/infrastructure/http/v1/handler"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(handler *handler.Handler, l logger.Logger, telemetryEnabled bool, serviceName string) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())

	// Add OpenTelemetry middleware if enabled
	if telemetryEnabled {
		r.Use(telemetry.GinMiddleware(serviceName))
	}

	r.Use(ginZapLogger(l))

	api := r.Group("/api")
	v1 := api.Group("/v1")

	v1.GET("/healthz", handler.Healthz)

	v1.GET("/tile/:z/:x/:y", handler.Tile)
	v1.GET("/tile/:z/:x/:y/raw", handler.RawTile)
	v1.GET("/tile/:z/:x/:y/bundle", handler.Bundle)

	v1.GET("/source", handler.Source)
	v1.PUT("/source", handler.UpdateSource)
	v1.POST("/source/parameters", handler.AddParameter)
	v1.DELETE("/source/parameters", handler.ClearParameters)
	v1.DELETE("/source/parameters/:key", handler.RemoveParameter)

	v1.POST("/prefetch", handler.Prefetch)

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func ginZapLogger(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("logger", l)

		if c.Request.URL.Path == "/api/v1/healthz" {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		end := time.Now()
		latency := end.Sub(start)

		l.Info("request",
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
			"latency", latency,
			"size", c.Writer.Size(),
		)
	}
}
