// Package urltemplate builds tile URLs from "{z}/{x}/{y}" templates and an
// ordered set of query parameters.
package urltemplate

import (
	"strconv"
	"strings"

	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
)

// Format replaces every {z}, {x} and {y} in template with the decimal values of
// idx. No other placeholders are recognized and there is no escaping.
func Format(template string, idx tile.Index) string {
	r := strings.NewReplacer(
		"{z}", strconv.FormatUint(uint64(idx.Z), 10),
		"{x}", strconv.FormatUint(uint64(idx.X), 10),
		"{y}", strconv.FormatUint(uint64(idx.Y), 10),
	)
	return r.Replace(template)
}
