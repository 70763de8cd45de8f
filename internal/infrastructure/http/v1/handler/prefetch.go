package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/infrastructure/http/v1/dto"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/usecase"
)

func (h *Handler) Prefetch(c *gin.Context) {
	var req dto.PrefetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithJSON(c, http.StatusBadRequest, ErrFailedToDecodeRequestBody.Error(), nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.RespondWithJSON(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}

	minZoom, maxZoom := req.Zooms()
	report, err := h.tileUseCase.Prefetch(c.Request.Context(), req.Bound(), minZoom, maxZoom)
	if err != nil {
		if errors.Is(err, usecase.ErrTooManyTiles) {
			h.RespondWithJSON(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		loggerFrom(c).Error("prefetch failed", "error", err)
		h.RespondWithInternalServerError(c)
		return
	}

	h.RespondWithJSON(c, http.StatusOK, "prefetch finished", report)
}
