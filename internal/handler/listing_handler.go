package handler

import (
	"net/http"
	"strconv"

	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/middleware"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ListingHandler listing endpoints
type ListingHandler struct {
	listingService service.ListingService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// Create handles POST /api/v1/listings
func (h *ListingHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	var req domain.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	resp, err := h.listingService.Create(principal, &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.CreatedResponse(c, resp)
}

// Get handles GET /api/v1/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	var viewer *authz.Principal
	if principal, ok := middleware.GetPrincipal(c); ok {
		viewer = &principal
	}

	resp, err := h.listingService.Get(id, viewer)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// List handles GET /api/v1/listings
func (h *ListingHandler) List(c *gin.Context) {
	params := &repository.ListingListParams{
		Type:   domain.ListingType(c.Query("type")),
		Region: c.Query("region"),
		Search: c.Query("q"),
	}
	params.Page, params.Limit = parsePagination(c)

	if v, err := strconv.ParseUint(c.Query("category_id"), 10, 64); err == nil {
		params.CategoryID = &v
	}
	if v, err := strconv.ParseInt(c.Query("price_min"), 10, 64); err == nil {
		params.PriceMin = &v
	}
	if v, err := strconv.ParseInt(c.Query("price_max"), 10, 64); err == nil {
		params.PriceMax = &v
	}
	if c.Query("featured") == "true" {
		params.Featured = true
	}

	var viewer *authz.Principal
	if principal, ok := middleware.GetPrincipal(c); ok {
		viewer = &principal
	}

	listings, meta, err := h.listingService.List(params, viewer)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, listings, meta)
}

// ListMine handles GET /api/v1/listings/mine
func (h *ListingHandler) ListMine(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	page, limit := parsePagination(c)
	listings, meta, err := h.listingService.ListMine(principal, page, limit)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, listings, meta)
}

// Update handles PUT /api/v1/listings/:id
func (h *ListingHandler) Update(c *gin.Context) {
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

	var req domain.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	if err := h.listingService.Update(principal, id, &req); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"updated": true}, nil)
}

// UpdateStatus handles PATCH /api/v1/listings/:id/status
func (h *ListingHandler) UpdateStatus(c *gin.Context) {
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

	var req domain.UpdateListingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	if err := h.listingService.UpdateStatus(principal, id, req.Status); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"status": req.Status}, nil)
}

// Delete handles DELETE /api/v1/listings/:id
func (h *ListingHandler) Delete(c *gin.Context) {
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

	if err := h.listingService.Delete(principal, id); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// Feature handles POST /api/v1/listings/:id/feature
func (h *ListingHandler) Feature(c *gin.Context) {
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

	var req domain.FeatureListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	if err := h.listingService.Feature(principal, id, req.Days); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"featured": true}, nil)
}

// Unfeature handles DELETE /api/v1/listings/:id/feature
func (h *ListingHandler) Unfeature(c *gin.Context) {
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

	if err := h.listingService.Unfeature(principal, id); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"featured": false}, nil)
}

// SetPromotion handles POST /api/v1/listings/:id/promotion
func (h *ListingHandler) SetPromotion(c *gin.Context) {
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

	var req domain.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	if err := h.listingService.SetPromotion(principal, id, &req); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"promotion": true}, nil)
}

// ClearPromotion handles DELETE /api/v1/listings/:id/promotion
func (h *ListingHandler) ClearPromotion(c *gin.Context) {
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

	if err := h.listingService.ClearPromotion(principal, id); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"promotion": false}, nil)
}
