package handler

import (
	"net/http"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ShortURLHandler short link endpoints
type ShortURLHandler struct {
	shortURLService service.ShortURLService
}

// NewShortURLHandler creates a new ShortURLHandler
func NewShortURLHandler(shortURLService service.ShortURLService) *ShortURLHandler {
	return &ShortURLHandler{shortURLService: shortURLService}
}

// Create handles POST /api/v1/short-urls
func (h *ShortURLHandler) Create(c *gin.Context) {
	var req domain.CreateShortURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	shortURL, err := h.shortURLService.Create(&req)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.CreatedResponse(c, shortURL)
}

// Redirect handles GET /s/:code
func (h *ShortURLHandler) Redirect(c *gin.Context) {
	shortURL, err := h.shortURLService.Resolve(c.Param("code"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, shortURL.TargetURL)
}
