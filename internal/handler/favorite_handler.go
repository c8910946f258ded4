package handler

import (
	"net/http"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/middleware"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// FavoriteHandler favorite endpoints
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add handles POST /api/v1/listings/:id/favorite
func (h *FavoriteHandler) Add(c *gin.Context) {
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

	favorite, err := h.favoriteService.Add(principal.UserID, listingID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.CreatedResponse(c, favorite)
}

// Remove handles DELETE /api/v1/listings/:id/favorite
func (h *FavoriteHandler) Remove(c *gin.Context) {
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

	if err := h.favoriteService.Remove(principal.UserID, listingID); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"removed": true}, nil)
}

// List handles GET /api/v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	page, limit := parsePagination(c)
	favorites, meta, err := h.favoriteService.List(principal.UserID, page, limit)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, favorites, meta)
}

// Check handles GET /api/v1/listings/:id/favorite.
// Anonymous callers get favorited=false rather than a 401.
func (h *FavoriteHandler) Check(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.SuccessResponse(c, gin.H{"favorited": false}, nil)
		return
	}

	listingID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	favorited, err := h.favoriteService.Check(principal.UserID, listingID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"favorited": favorited}, nil)
}
