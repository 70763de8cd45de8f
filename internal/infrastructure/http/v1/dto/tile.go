package dto

import "github.com/jaennil/guide_helper/backend/mapcore/internal/render"

type BundleResponse struct {
	Tile   string       `json:"tile"`
	Stats  render.Stats `json:"stats"`
	Bounds []float64    `json:"bounds,omitempty"`
}
