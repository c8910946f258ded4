package handler

import (
	"net/http"
	"strconv"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/middleware"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// MessageHandler messaging endpoints
type MessageHandler struct {
	contactService service.ContactService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(contactService service.ContactService) *MessageHandler {
	return &MessageHandler{contactService: contactService}
}

// Contact handles POST /api/v1/listings/:id/contact
func (h *MessageHandler) Contact(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	listingID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	resp, err := h.contactService.Contact(principal, listingID, &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	if resp.Existing {
		common.SuccessResponse(c, resp, nil)
		return
	}
	common.CreatedResponse(c, resp)
}

// Send handles POST /api/v1/messages
func (h *MessageHandler) Send(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	message, err := h.contactService.Send(principal, &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.CreatedResponse(c, message)
}

// Conversations handles GET /api/v1/messages/conversations
func (h *MessageHandler) Conversations(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	conversations, err := h.contactService.Conversations(principal)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, conversations, nil)
}

// Thread handles GET /api/v1/messages/with/:peerID
func (h *MessageHandler) Thread(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	peerID, err := parseID(c, "peerID")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	var listingID *uint64
	if v, err := strconv.ParseUint(c.Query("listing_id"), 10, 64); err == nil {
		listingID = &v
	}

	page, limit := parsePagination(c)
	messages, meta, err := h.contactService.Thread(principal, peerID, listingID, page, limit)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, messages, meta)
}

// UnreadCount handles GET /api/v1/messages/unread
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	count, err := h.contactService.UnreadCount(principal)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"unread": count}, nil)
}
