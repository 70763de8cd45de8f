package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/platform"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/repository/cache"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/urltemplate"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var idx = tile.New(3, 4, 2)

func TestVectorTileLoaderFetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform()
	p.serve(testURL(idx), vectorPayload(t))
	c := cache.NewMapCache()

	l := NewVectorTileLoader(URLSourceFunc(testURL), p, c, LoaderOptions{}, nil)

	vt, err := l.Load(ctx, idx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if vt.Layer("poi") == nil || vt.FeatureCount() != 1 {
		t.Errorf("unexpected tile %+v", vt)
	}
	if _, ok, _ := c.Get(ctx, testURL(idx)); !ok {
		t.Errorf("fetched bytes were not written to the cache")
	}
	if p.fetches.Load() != 1 {
		t.Errorf("fetches = %d, want 1", p.fetches.Load())
	}
}

func TestCacheHitSkipsFetch(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform()
	c := cache.NewMapCache()
	c.Set(ctx, testURL(idx), vectorPayload(t))

	before := testutil.ToFloat64(metrics.TileCacheHits.WithLabelValues(KindVector))

	l := NewVectorTileLoader(URLSourceFunc(testURL), p, c, LoaderOptions{}, nil)
	if _, err := l.Load(ctx, idx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.fetches.Load() != 0 {
		t.Errorf("fetches = %d, want 0 on cache hit", p.fetches.Load())
	}
	if d := testutil.ToFloat64(metrics.TileCacheHits.WithLabelValues(KindVector)) - before; d != 1 {
		t.Errorf("cache hits increased by %v, want 1", d)
	}
}

func TestOfflineMissDoesNotFetch(t *testing.T) {
	p := newFakePlatform()
	p.serve(testURL(idx), vectorPayload(t))

	l := NewVectorTileLoader(URLSourceFunc(testURL), p, cache.NewMapCache(), LoaderOptions{OfflineMode: true}, nil)

	_, err := l.Load(context.Background(), idx)
	if !errors.Is(err, ErrDoesNotExist) {
		t.Fatalf("err = %v, want ErrDoesNotExist", err)
	}
	if p.fetches.Load() != 0 {
		t.Errorf("fetches = %d, want 0 in offline mode", p.fetches.Load())
	}

	l.SetOfflineMode(false)
	if _, err := l.Load(context.Background(), idx); err != nil {
		t.Fatalf("Load after going online: %v", err)
	}
}

func TestOfflineHitStillServes(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMapCache()
	c.Set(ctx, testURL(idx), vectorPayload(t))

	l := NewVectorTileLoader(URLSourceFunc(testURL), newFakePlatform(), c, LoaderOptions{OfflineMode: true}, nil)
	if _, err := l.Load(ctx, idx); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestCacheWriteFailureDoesNotChangeResult(t *testing.T) {
	p := newFakePlatform()
	p.serve(testURL(idx), vectorPayload(t))
	c := &failingSetCache{MapCache: cache.NewMapCache()}

	before := testutil.ToFloat64(metrics.TileCacheWriteFailures.WithLabelValues(KindVector))

	l := NewVectorTileLoader(URLSourceFunc(testURL), p, c, LoaderOptions{}, nil)
	vt, err := l.Load(context.Background(), idx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if vt.FeatureCount() != 1 {
		t.Errorf("FeatureCount = %d, want 1", vt.FeatureCount())
	}
	if c.sets.Load() != 1 {
		t.Errorf("cache Set called %d times, want 1", c.sets.Load())
	}
	if d := testutil.ToFloat64(metrics.TileCacheWriteFailures.WithLabelValues(KindVector)) - before; d != 1 {
		t.Errorf("write failures increased by %v, want 1", d)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(p *fakePlatform)
		want      error
		retryable bool
	}{
		{
			name:  "not found",
			setup: func(p *fakePlatform) {},
			want:  ErrDoesNotExist,
		},
		{
			name: "upstream failure",
			setup: func(p *fakePlatform) {
				p.fail(testURL(idx), &platform.StatusError{URL: testURL(idx), StatusCode: 503})
			},
			want:      ErrNetwork,
			retryable: true,
		},
		{
			name: "garbage payload",
			setup: func(p *fakePlatform) {
				p.serve(testURL(idx), []byte{0x1a, 0x05, 0x0a})
			},
			want: ErrDecoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakePlatform()
			tt.setup(p)

			l := NewVectorTileLoader(URLSourceFunc(testURL), p, cache.NewMapCache(), LoaderOptions{}, nil)
			vt, err := l.Load(context.Background(), idx)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if vt != nil {
				t.Errorf("expected nil tile on error")
			}
			if Retryable(err) != tt.retryable {
				t.Errorf("Retryable = %v, want %v", Retryable(err), tt.retryable)
			}
		})
	}
}

func TestDecodingFailureStillCachesBytes(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform()
	p.serve(testURL(idx), []byte("not a tile"))
	c := cache.NewMapCache()

	l := NewRasterTileLoader(URLSourceFunc(testURL), p, c, LoaderOptions{}, nil)
	if _, err := l.Load(ctx, idx); !errors.Is(err, ErrDecoding) {
		t.Fatalf("err = %v, want ErrDecoding", err)
	}
	if _, ok, _ := c.Get(ctx, testURL(idx)); !ok {
		t.Errorf("fetched bytes should be cached before decoding")
	}
}

func TestRasterTileLoader(t *testing.T) {
	p := newFakePlatform()
	p.serve(testURL(idx), pngPayload(t))

	l := NewRasterTileLoader(URLSourceFunc(testURL), p, nil, LoaderOptions{}, nil)
	img, err := l.Load(context.Background(), idx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Errorf("size = %dx%d, want 2x2", img.Width, img.Height)
	}
}

func TestRasterTileLoaderScalesToTileSize(t *testing.T) {
	p := newFakePlatform()
	p.serve(testURL(idx), pngPayload(t))

	l := NewRasterTileLoader(URLSourceFunc(testURL), p, nil, LoaderOptions{TileSize: 4}, nil)
	img, err := l.Load(context.Background(), idx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Width != 4 || img.Height != 4 {
		t.Errorf("size = %dx%d, want 4x4", img.Width, img.Height)
	}
	if len(img.Pix) != 4*4*4 {
		t.Errorf("len(Pix) = %d, want %d", len(img.Pix), 4*4*4)
	}
}

func TestCacheLookupFailure(t *testing.T) {
	tests := []struct {
		name        string
		offline     bool
		wantErr     error
		wantFetches int64
	}{
		{name: "online fetches", offline: false, wantErr: nil, wantFetches: 1},
		{name: "offline reports missing", offline: true, wantErr: ErrDoesNotExist, wantFetches: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakePlatform()
			p.serve(testURL(idx), vectorPayload(t))
			c := &failingGetCache{MapCache: cache.NewMapCache()}

			l := NewVectorTileLoader(URLSourceFunc(testURL), p, c, LoaderOptions{OfflineMode: tt.offline}, nil)
			got, err := l.Load(context.Background(), idx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.Layer("poi") == nil {
				t.Errorf("decoded tile has no poi layer")
			}
			if n := p.fetches.Load(); n != tt.wantFetches {
				t.Errorf("fetches = %d, want %d", n, tt.wantFetches)
			}
		})
	}
}

func TestDynamicLoaderUsesCurrentConfiguration(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform()
	p.serve("https://a.test/3/4/2.pbf?key=1", vectorPayload(t))
	p.serve("https://b.test/3/4/2.pbf?key=1&lang=de", vectorPayload(t))

	l := NewDynamicVectorTileLoader("https://a.test/{z}/{x}/{y}.pbf",
		urltemplate.Parameters{{Key: "key", Value: "1"}}, p, cache.NewMapCache(), LoaderOptions{}, nil)

	if _, err := l.Load(ctx, idx); err != nil {
		t.Fatalf("Load with initial template: %v", err)
	}

	l.UpdateURLTemplate("https://b.test/{z}/{x}/{y}.pbf")
	l.AddParameter("lang", "de")
	if got := l.URL(idx); got != "https://b.test/3/4/2.pbf?key=1&lang=de" {
		t.Fatalf("URL = %q", got)
	}
	if _, err := l.Load(ctx, idx); err != nil {
		t.Fatalf("Load with updated template: %v", err)
	}
	if p.fetches.Load() != 2 {
		t.Errorf("fetches = %d, want 2 (different URLs are different cache keys)", p.fetches.Load())
	}
}
