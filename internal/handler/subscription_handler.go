package handler

import (
	"io"
	"net/http"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/middleware"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SubscriptionHandler subscription and payment endpoints
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Current handles GET /api/v1/subscriptions/me
func (h *SubscriptionHandler) Current(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	sub, err := h.subscriptionService.Current(principal.UserID)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	if sub == nil {
		common.SuccessResponse(c, gin.H{"tier": domain.TierFree}, nil)
		return
	}
	common.SuccessResponse(c, sub, nil)
}

// Subscribe handles POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	var req domain.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", err.Error())
		return
	}

	resp, err := h.subscriptionService.Subscribe(c.Request.Context(), principal, &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.CreatedResponse(c, resp)
}

// ListTransactions handles GET /api/v1/subscriptions/transactions
func (h *SubscriptionHandler) ListTransactions(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
		return
	}

	page, limit := parsePagination(c)
	transactions, meta, err := h.subscriptionService.ListTransactions(principal, page, limit)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, transactions, meta)
}

// PaymentCallback handles POST /api/v1/payments/callback/:provider.
// Providers retry on non-2xx, so processing errors other than a bad
// provider slug still return 200 once the payload has been recorded.
func (h *SubscriptionHandler) PaymentCallback(c *gin.Context) {
	var method domain.PaymentMethod
	switch c.Param("provider") {
	case "orange-money":
		method = domain.PaymentOrangeMoney
	case "wave":
		method = domain.PaymentWave
	default:
		common.ErrorResponse(c, http.StatusNotFound, "Fournisseur de paiement inconnu", nil)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Requête invalide", nil)
		return
	}

	if err := h.subscriptionService.HandleCallback(c.Request.Context(), method, payload); err != nil {
		common.RespondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"received": true}, nil)
}
