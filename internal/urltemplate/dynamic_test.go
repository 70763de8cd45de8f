package urltemplate_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/urltemplate"
)

func TestDynamicURL(t *testing.T) {
	d := urltemplate.NewDynamic("https://vector.tiles.com/{z}/{x}/{y}.pbf")
	idx := tile.New(3, 5, 3)

	if got, want := d.URL(idx), "https://vector.tiles.com/3/5/3.pbf"; got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}

	d.UpdateURLTemplate("https://custom.vector.tiles.com/{z}/{x}/{y}.pbf")
	d.UpdateParameters(urltemplate.Parameters{
		{Key: "api_key", Value: "your_api_key"},
		{Key: "style", Value: "dark"},
	})
	if got, want := d.URL(idx), "https://custom.vector.tiles.com/3/5/3.pbf?api_key=your_api_key&style=dark"; got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}

	d.AddParameter("format", "pbf")
	d.AddParameter("style", "light")
	d.RemoveParameter("style")
	if got, want := d.URL(idx), "https://custom.vector.tiles.com/3/5/3.pbf?api_key=your_api_key&format=pbf"; got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}

	d.ClearParameters()
	if got := d.URL(idx); strings.Contains(got, "?") {
		t.Errorf("URL after ClearParameters = %q, want no query", got)
	}
}

func TestDynamicParametersIsACopy(t *testing.T) {
	d := urltemplate.NewDynamic("{z}/{x}/{y}", urltemplate.Parameter{Key: "a", Value: "1"})

	params := d.Parameters()
	params.Add("b", "2")
	params[0].Value = "changed"

	want := urltemplate.Parameters{{Key: "a", Value: "1"}}
	if diff := cmp.Diff(want, d.Parameters()); diff != "" {
		t.Errorf("Parameters mismatch (-want+got):\n%v", diff)
	}

	src := urltemplate.Parameters{{Key: "x", Value: "y"}}
	d.UpdateParameters(src)
	src[0].Value = "mutated"
	if got := d.URL(tile.New(0, 0, 0)); got != "0/0/0?x=y" {
		t.Errorf("URL = %q, UpdateParameters must copy its input", got)
	}
}

// Readers racing with writers must only ever see complete parameter sets.
func TestDynamicConcurrentSnapshots(t *testing.T) {
	setA := urltemplate.Parameters{{Key: "set", Value: "a"}, {Key: "k1", Value: "v1"}, {Key: "k2", Value: "v2"}}
	setB := urltemplate.Parameters{{Key: "set", Value: "b"}, {Key: "other", Value: "x y"}}
	valid := map[string]bool{
		"1/0/1?" + setA.Encode(): true,
		"1/0/1?" + setB.Encode(): true,
	}

	d := urltemplate.NewDynamic("{z}/{x}/{y}", setA...)
	idx := tile.New(1, 0, 1)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			if i%2 == 0 {
				d.UpdateParameters(setB)
			} else {
				d.UpdateParameters(setA)
			}
		}
		close(stop)
	}()

	errs := make(chan string, 8)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if u := d.URL(idx); !valid[u] {
					select {
					case errs <- u:
					default:
					}
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for u := range errs {
		t.Errorf("observed partial configuration: %q", u)
	}
}
