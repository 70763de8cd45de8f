package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/infrastructure/http/v1/dto"
)

func (h *Handler) Source(c *gin.Context) {
	h.RespondWithJSON(c, http.StatusOK, "tile source", h.tileUseCase.Source())
}

func (h *Handler) UpdateSource(c *gin.Context) {
	var req dto.UpdateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithJSON(c, http.StatusBadRequest, ErrFailedToDecodeRequestBody.Error(), nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.RespondWithJSON(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}

	src := h.tileUseCase.UpdateSource(req.URLTemplate, req.ToParameters(), req.OfflineMode)
	h.RespondWithJSON(c, http.StatusOK, "tile source updated", src)
}

func (h *Handler) AddParameter(c *gin.Context) {
	var req dto.Parameter
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithJSON(c, http.StatusBadRequest, ErrFailedToDecodeRequestBody.Error(), nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.RespondWithJSON(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}

	h.RespondWithJSON(c, http.StatusOK, "parameter added", h.tileUseCase.AddParameter(req.Key, req.Value))
}

func (h *Handler) RemoveParameter(c *gin.Context) {
	h.RespondWithJSON(c, http.StatusOK, "parameter removed", h.tileUseCase.RemoveParameter(c.Param("key")))
}

func (h *Handler) ClearParameters(c *gin.Context) {
	h.RespondWithJSON(c, http.StatusOK, "parameters cleared", h.tileUseCase.ClearParameters())
}
