package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/tile"
	"github.com/jaennil/guide_helper/backend/mapcore/internal/usecase"
	"github.com/jaennil/guide_helper/backend/mapcore/pkg/logger"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type Handler struct {
	validate      *validator.Validate
	tileUseCase   *usecase.TileUseCase
	renderUseCase *usecase.RenderUseCase
}

// NewHandler registers the custom validations it relies on with v.
// renderUseCase may be nil for raster sources.
func NewHandler(v *validator.Validate, tileUseCase *usecase.TileUseCase, renderUseCase *usecase.RenderUseCase) (*Handler, error) {
	if err := v.RegisterValidation("url_template", validateURLTemplate); err != nil {
		return nil, fmt.Errorf("failed to register url_template validation: %w", err)
	}

	return &Handler{
		validate:      v,
		tileUseCase:   tileUseCase,
		renderUseCase: renderUseCase,
	}, nil
}

func validateURLTemplate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return (strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")) &&
		strings.Contains(s, "{z}") && strings.Contains(s, "{x}") && strings.Contains(s, "{y}")
}

func (h *Handler) RespondWithInternalServerError(c *gin.Context) {
	h.RespondWithJSON(c, http.StatusInternalServerError, InternalServerError.Error(), nil)
}

func (h *Handler) RespondWithJSON(c *gin.Context, code int, message string, data any) {
	success := code < 400

	r := response{
		Success: success,
		Message: message,
		Data:    data,
	}

	c.JSON(code, r)
}

// RespondWithLoadError maps tile loading failures to status codes.
func (h *Handler) RespondWithLoadError(c *gin.Context, err error) {
	l := loggerFrom(c)

	switch {
	case errors.Is(err, tile.ErrInvalid):
		h.RespondWithJSON(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, usecase.ErrDoesNotExist):
		h.RespondWithJSON(c, http.StatusNotFound, "tile does not exist", nil)
	case errors.Is(err, usecase.ErrDecoding):
		l.Warn("tile payload could not be decoded", "path", c.Request.URL.Path, "error", err)
		h.RespondWithJSON(c, http.StatusUnprocessableEntity, "tile payload is malformed", nil)
	case errors.Is(err, usecase.ErrNetwork):
		l.Error("failed to fetch tile", "path", c.Request.URL.Path, "error", err)
		h.RespondWithJSON(c, http.StatusBadGateway, "failed to fetch tile from upstream", nil)
	default:
		l.Error("failed to load tile", "path", c.Request.URL.Path, "error", err)
		h.RespondWithInternalServerError(c)
	}
}

func loggerFrom(c *gin.Context) logger.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(logger.Logger); ok {
			return l
		}
	}
	return logger.FromContext(c.Request.Context())
}

func tileIndex(c *gin.Context) (tile.Index, error) {
	return tile.Parse(c.Param("z"), c.Param("x"), c.Param("y"))
}
