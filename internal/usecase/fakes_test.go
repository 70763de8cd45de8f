package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/platform"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/repository/cache"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
)

// fakePlatform serves fixed payloads by URL and counts fetches.
type fakePlatform struct {
	mu      sync.Mutex
	data    map[string][]byte
	errs    map[string]error
	fetches atomic.Int64
	// gate, when set, blocks every fetch until it is closed
	gate chan struct{}
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		data: make(map[string][]byte),
		errs: make(map[string]error),
	}
}

func (p *fakePlatform) serve(url string, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[url] = data
}

func (p *fakePlatform) fail(url string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[url] = err
}

func (p *fakePlatform) LoadBytesFromURL(ctx context.Context, url string) ([]byte, error) {
	p.fetches.Add(1)
	if p.gate != nil {
		<-p.gate
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.errs[url]; ok {
		return nil, err
	}
	if d, ok := p.data[url]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %s", platform.ErrNotFound, url)
}

// failingSetCache reads from an inner map cache but refuses every write.
type failingSetCache struct {
	*cache.MapCache
	sets atomic.Int64
}

func (c *failingSetCache) Set(context.Context, string, cache.TileCacheValue) error {
	c.sets.Add(1)
	return errors.New("disk full")
}

// failingGetCache accepts writes but fails every lookup.
type failingGetCache struct {
	*cache.MapCache
}

func (c *failingGetCache) Get(context.Context, string) (cache.TileCacheValue, bool, error) {
	return nil, false, errors.New("connection reset")
}

func testURL(idx tile.Index) string {
	return fmt.Sprintf("https://tiles.test/%d/%d/%d.pbf", idx.Z, idx.X, idx.Y)
}

func vectorPayload(t *testing.T) []byte {
	t.Helper()
	return vectorPayloadLayer(t, "poi")
}

// vectorPayloadLayer encodes the test point into a layer with the given name.
func vectorPayloadLayer(t *testing.T, layer string) []byte {
	t.Helper()

	f := geojson.NewFeature(orb.Point{2048, 2048})
	f.Properties["name"] = "Cafe"
	fc := geojson.NewFeatureCollection()
	fc.Append(f)

	data, err := mvt.Marshal(mvt.NewLayers(map[string]*geojson.FeatureCollection{layer: fc}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func pngPayload(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}
