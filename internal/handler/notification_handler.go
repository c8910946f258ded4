package handler

import (
	"net/http"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/middleware"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// NotificationHandler notification endpoints
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	page, limit := parsePagination(c)
	resp, meta, err := h.notificationService.List(principal, page, limit)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, meta)
}

// MarkRead handles PATCH /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	if err := h.notificationService.MarkRead(principal, id); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"read": true}, nil)
}

// MarkAllRead handles PATCH /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	if err := h.notificationService.MarkAllRead(principal); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"read": true}, nil)
}

// Delete handles DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	if err := h.notificationService.Delete(principal, id); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
