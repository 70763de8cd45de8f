package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/infrastructure/http/v1/handler"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/platform"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/render"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/repository/cache"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/symbol"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/usecase"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/config"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router   *gin.Engine
	upstream *httptest.Server
	hits     atomic.Int64
}

func poiTile(t *testing.T) []byte {
	t.Helper()

	f := geojson.NewFeature(orb.Point{1024, 1024})
	f.Properties["name"] = "Library"
	fc := geojson.NewFeatureCollection()
	fc.Append(f)

	data, err := mvt.Marshal(mvt.NewLayers(map[string]*geojson.FeatureCollection{"poi": fc}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{}
	payload := poiTile(t)
	ts.upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.hits.Add(1)
		switch r.URL.Path {
		case "/2/1/1.pbf":
			w.Write(payload)
		case "/2/2/2.pbf":
			w.Write([]byte{0x1a, 0x05, 0x0a})
		case "/2/3/3.pbf":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.upstream.Close)

	l := logger.NewNop()
	p := platform.NewHTTPPlatform(config.Platform{Timeout: 5 * time.Second, UserAgent: "test"}, l)
	loader := usecase.NewDynamicVectorTileLoader(ts.upstream.URL+"/{z}/{x}/{y}.pbf", nil, p, cache.NewMapCache(), usecase.LoaderOptions{}, l)

	tileUseCase := usecase.NewVectorTileUseCase(loader, loader, config.Prefetch{Concurrency: 2, MaxTiles: 32}, l)
	renderUseCase := usecase.NewRenderUseCase(loader, symbol.DefaultStyle(), render.NewStatsRenderer(l), 256, l)

	h, err := handler.NewHandler(validator.New(), tileUseCase, renderUseCase)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	ts.router = NewRouter(h, l, false, "test")
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	w, _ := ts.do(t, http.MethodGet, "/api/v1/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestTileStatusCodes(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/tile/2/1/1", http.StatusOK},
		{"/api/v1/tile/2/0/0", http.StatusNotFound},
		{"/api/v1/tile/2/2/2", http.StatusUnprocessableEntity},
		{"/api/v1/tile/2/3/3", http.StatusBadGateway},
		{"/api/v1/tile/2/9/9", http.StatusBadRequest},
		{"/api/v1/tile/a/1/1", http.StatusBadRequest},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, env := ts.do(t, http.MethodGet, tt.path, nil)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, env.Message)
			}
			if env.Success != (tt.want == http.StatusOK) {
				t.Errorf("success = %v", env.Success)
			}
		})
	}
}

func TestTileSummaryAndCache(t *testing.T) {
	ts := newTestServer(t)

	_, env := ts.do(t, http.MethodGet, "/api/v1/tile/2/1/1", nil)
	var summary usecase.TileSummary
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Tile != "2/1/1" || len(summary.Layers) != 1 || summary.Layers[0].Features != 1 {
		t.Errorf("summary = %+v", summary)
	}

	w, _ := ts.do(t, http.MethodGet, "/api/v1/tile/2/1/1/raw", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/vnd.mapbox-vector-tile" {
		t.Errorf("raw: status %d, content type %q", w.Code, w.Header().Get("Content-Type"))
	}
	if ts.hits.Load() != 1 {
		t.Errorf("upstream hits = %d, want 1", ts.hits.Load())
	}
}

func TestBundle(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodGet, "/api/v1/tile/2/1/1/bundle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, env.Message)
	}

	var resp struct {
		Tile  string       `json:"tile"`
		Stats render.Stats `json:"stats"`
	}
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	// default style draws a circle and a screen label for a named poi
	if resp.Stats.Points != 1 || resp.Stats.ScreenLabels != 1 {
		t.Errorf("stats = %+v", resp.Stats)
	}

	w, _ = ts.do(t, http.MethodGet, "/api/v1/tile/2/0/0/bundle", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing tile bundle status = %d, want 404", w.Code)
	}
}

func TestSourceEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/api/v1/source/parameters", map[string]string{"key": "lang", "value": "de"})
	if w.Code != http.StatusOK {
		t.Fatalf("add parameter status = %d (%s)", w.Code, env.Message)
	}
	ts.do(t, http.MethodPost, "/api/v1/source/parameters", map[string]string{"key": "token", "value": "a b"})

	w, _ = ts.do(t, http.MethodPost, "/api/v1/source/parameters", map[string]string{"value": "no key"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("parameter without key status = %d, want 422", w.Code)
	}

	_, env = ts.do(t, http.MethodDelete, "/api/v1/source/parameters/lang", nil)
	var src usecase.SourceConfig
	json.Unmarshal(env.Data, &src)
	if len(src.Parameters) != 1 || src.Parameters[0].Key != "token" {
		t.Errorf("parameters after remove = %+v", src.Parameters)
	}

	offline := true
	w, env = ts.do(t, http.MethodPut, "/api/v1/source", map[string]any{
		"url_template": ts.upstream.URL + "/{z}/{x}/{y}.pbf",
		"parameters":   []map[string]string{},
		"offline_mode": offline,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update source status = %d (%s)", w.Code, env.Message)
	}

	// offline and nothing cached
	w, _ = ts.do(t, http.MethodGet, "/api/v1/tile/2/1/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("offline tile status = %d, want 404", w.Code)
	}
	if ts.hits.Load() != 0 {
		t.Errorf("upstream hits = %d, want 0 in offline mode", ts.hits.Load())
	}

	w, _ = ts.do(t, http.MethodPut, "/api/v1/source", map[string]any{"url_template": "ftp://nope"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid template status = %d, want 422", w.Code)
	}

	_, env = ts.do(t, http.MethodGet, "/api/v1/source", nil)
	json.Unmarshal(env.Data, &src)
	if !src.OfflineMode {
		t.Errorf("source should report offline mode")
	}
}

func TestPrefetch(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/api/v1/prefetch", map[string]any{
		"min_lon": -170, "min_lat": -80, "max_lon": 170, "max_lat": 80,
		"min_zoom": 2, "max_zoom": 2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, env.Message)
	}

	var report usecase.PrefetchReport
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Requested != 16 || report.Loaded != 1 || report.Failed != 2 || report.Missing != 13 {
		t.Errorf("report = %+v", report)
	}

	w, _ = ts.do(t, http.MethodPost, "/api/v1/prefetch", map[string]any{
		"min_lon": -170, "min_lat": -80, "max_lon": 170, "max_lat": 80,
		"min_zoom": 0, "max_zoom": 5,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("oversized prefetch status = %d, want 400", w.Code)
	}

	w, _ = ts.do(t, http.MethodPost, "/api/v1/prefetch", map[string]any{
		"min_lon": 10, "min_lat": 0, "max_lon": 5, "max_lat": 1,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("inverted bound status = %d, want 422", w.Code)
	}
}
