package urltemplate

import (
	"sync"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
)

// Dynamic is a URL template and parameter set that can be changed while tiles
// are being loaded. URL always observes a complete snapshot: an update either
// happened entirely before the read or entirely after it.
type Dynamic struct {
	mu         sync.RWMutex
	template   string
	parameters Parameters
}

func NewDynamic(template string, params ...Parameter) *Dynamic {
	return &Dynamic{
		template:   template,
		parameters: Parameters(params).Clone(),
	}
}

// URL generates the URL for idx from the current template and parameters.
func (d *Dynamic) URL(idx tile.Index) string {
	d.mu.RLock()
	template := d.template
	query := ""
	if len(d.parameters) > 0 {
		query = d.parameters.Encode()
	}
	d.mu.RUnlock()

	u := Format(template, idx)
	if query != "" {
		u += "?" + query
	}
	return u
}

func (d *Dynamic) URLTemplate() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.template
}

// UpdateURLTemplate replaces the template. Loads that already generated their
// URL are not affected.
func (d *Dynamic) UpdateURLTemplate(template string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.template = template
}

// Parameters returns a copy of the current parameters.
func (d *Dynamic) Parameters() Parameters {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.parameters.Clone()
}

func (d *Dynamic) UpdateParameters(params Parameters) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.parameters = params.Clone()
}

func (d *Dynamic) AddParameter(key, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.parameters.Add(key, value)
}

func (d *Dynamic) RemoveParameter(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.parameters.Remove(key)
}

func (d *Dynamic) ClearParameters() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.parameters.Clear()
}
