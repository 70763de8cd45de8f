package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/infrastructure/http/v1/dto"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/usecase"
)

func (h *Handler) Tile(c *gin.Context) {
	l := loggerFrom(c)

	idx, err := tileIndex(c)
	if err != nil {
		l.Warn("invalid tile request", "path", c.Request.URL.Path, "error", err)
		h.RespondWithLoadError(c, err)
		return
	}

	l.Info("tile request", "tile", idx.String())

	summary, err := h.tileUseCase.Tile(c.Request.Context(), idx)
	if err != nil {
		h.RespondWithLoadError(c, err)
		return
	}

	h.RespondWithJSON(c, http.StatusOK, "got tile", summary)
}

func (h *Handler) RawTile(c *gin.Context) {
	idx, err := tileIndex(c)
	if err != nil {
		h.RespondWithLoadError(c, err)
		return
	}

	data, err := h.tileUseCase.RawTile(c.Request.Context(), idx)
	if err != nil {
		h.RespondWithLoadError(c, err)
		return
	}

	contentType := http.DetectContentType(data)
	if h.tileUseCase.Kind() == usecase.KindVector {
		contentType = "application/vnd.mapbox-vector-tile"
	}
	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) Bundle(c *gin.Context) {
	if h.renderUseCase == nil {
		h.RespondWithJSON(c, http.StatusNotImplemented, ErrBundleNeedsVectorSource.Error(), nil)
		return
	}

	idx, err := tileIndex(c)
	if err != nil {
		h.RespondWithLoadError(c, err)
		return
	}

	batch, err := h.renderUseCase.RenderTile(c.Request.Context(), idx)
	if err != nil {
		h.RespondWithLoadError(c, err)
		return
	}

	resp := dto.BundleResponse{
		Tile:  idx.String(),
		Stats: batch.Stats,
	}
	if b, ok := batch.World.Bound(); ok {
		resp.Bounds = []float64{b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()}
	}

	h.RespondWithJSON(c, http.StatusOK, "rendered tile", resp)
}
