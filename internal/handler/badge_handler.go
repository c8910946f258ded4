package handler

import (
	"net/http"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// BadgeHandler badge endpoints
type BadgeHandler struct {
	badgeService service.BadgeService
}

// NewBadgeHandler creates a new BadgeHandler
func NewBadgeHandler(badgeService service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// List handles GET /api/v1/badges
func (h *BadgeHandler) List(c *gin.Context) {
	badges, err := h.badgeService.ListBadges()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, badges, nil)
}

// ListByUser handles GET /api/v1/users/:id/badges
func (h *BadgeHandler) ListByUser(c *gin.Context) {
	userID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	userBadges, err := h.badgeService.ListUserBadges(userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, userBadges, nil)
}
