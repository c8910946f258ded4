package handler

import (
	"net/http"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/middleware"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ReportHandler report endpoints
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create handles POST /api/v1/reports
func (h *ReportHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	var req domain.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	report, err := h.reportService.Create(principal, &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.CreatedResponse(c, report)
}

// List handles GET /api/v1/admin/reports
func (h *ReportHandler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	page, limit := parsePagination(c)
	status := domain.ReportStatus(c.Query("status"))
	reports, meta, err := h.reportService.List(principal, status, page, limit)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, reports, meta)
}

// Resolve handles PATCH /api/v1/admin/reports/:id
func (h *ReportHandler) Resolve(c *gin.Context) {
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

	var req domain.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	if err := h.reportService.Resolve(principal, id, req.Status); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"status": req.Status}, nil)
}
