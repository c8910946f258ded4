package handler

import (
	"net/http"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/middleware"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler authentication endpoints
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.CreatedResponse(c, resp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	user, err := h.authService.Me(principal.UserID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, user, nil)
}
