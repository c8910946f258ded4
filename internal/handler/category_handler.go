package handler

import (
	"net/http"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// CategoryHandler category endpoints
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, categories, nil)
}

// Get handles GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return
	}

	category, err := h.categoryService.Get(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, category, nil)
}
