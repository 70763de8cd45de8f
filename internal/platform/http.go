package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jaennil/guide_helper/backend/mapcore/pkg/config"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/metrics"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

type HTTPPlatform struct {
	httpClient *http.Client
	userAgent  string
	referer    string
	logger     logger.Logger
}

func NewHTTPPlatform(cfg config.Platform, l logger.Logger) *HTTPPlatform {
	return &HTTPPlatform{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
		referer:   cfg.Referer,
		logger:    logger.OrNop(l),
	}
}

var _ Platform = (*HTTPPlatform)(nil)

func (p *HTTPPlatform) LoadBytesFromURL(ctx context.Context, url string) ([]byte, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "platform.LoadBytesFromURL",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(http.MethodGet),
			attribute.String("url.full", url),
		),
	)
	defer span.End()

	data, err := p.load(ctx, span, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return data, nil
}

func (p *HTTPPlatform) load(ctx context.Context, span trace.Span, url string) ([]byte, error) {
	p.logger.Debug("fetching from upstream", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		p.logger.Error("failed to create request", "error", err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers for OpenStreetMap tile usage policy
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	if p.referer != "" {
		req.Header.Set("Referer", p.referer)
	}

	metrics.TilesUpstreamRequests.Inc()
	start := time.Now()
	resp, err := p.httpClient.Do(req)
	metrics.TilesUpstreamLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		p.logger.Error("failed to fetch from upstream", "url", url, "error", err)
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		p.logger.Debug("upstream has no such tile", "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		p.logger.Error("upstream returned non-2xx", "url", url, "status", resp.StatusCode)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Error("failed to read tile data", "url", url, "error", err)
		return nil, fmt.Errorf("failed to read tile data: %w", err)
	}

	p.logger.Debug("fetched tile from upstream", "url", url, "size", len(data))
	return data, nil
}
