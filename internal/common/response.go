package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse standard API response envelope
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// Meta pagination metadata
type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	Total      int64 `json:"total,omitempty"`
	TotalPages int64 `json:"total_pages,omitempty"`
}

// NewMeta creates Meta with computed total_pages
func NewMeta(page, limit int, total int64) *Meta {
	totalPages := total / int64(limit)
	if total%int64(limit) > 0 {
		totalPages++
	}
	return &Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ErrorInfo error details
type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse returns a 200 JSON response
func SuccessResponse(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// CreatedResponse returns a 201 JSON response
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

// ErrorResponse returns an error JSON response with an explicit status
func ErrorResponse(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:    getErrorCode(status),
			Message: message,
			Details: details,
		},
	})
}

// RespondError maps a service error to its HTTP representation.
// Conflicts are reported as 400 with a descriptive message, matching
// the public API contract.
func RespondError(c *gin.Context, err error) {
	if qe, ok := AsQuotaError(err); ok {
		c.JSON(http.StatusForbidden, APIResponse{
			Success: false,
			Error: &ErrorInfo{
				Code:    "QUOTA_EXCEEDED",
				Message: ErrFeaturedNotAllowed.Error(),
				Details: gin.H{
					"current":       qe.Current,
					"limit":         qe.Limit,
					"required_tier": qe.RequiredTier,
				},
			},
		})
		return
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrExpiredToken),
		errors.Is(err, ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrFeaturedNotAllowed):
		ErrorResponse(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrListingNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrFavoriteNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTransactionNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrSelfContact),
		errors.Is(err, ErrSelfReview),
		errors.Is(err, ErrListingNotActive),
		errors.Is(err, ErrListingLimit),
		errors.Is(err, ErrImageLimit),
		errors.Is(err, ErrReportLimit),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrFavoriteExists),
		errors.Is(err, ErrReviewExists),
		errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrAlreadyFeatured):
		ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	default:
		ErrorResponse(c, http.StatusInternalServerError, "une erreur interne est survenue", nil)
	}
}

// getErrorCode generates error code from HTTP status
func getErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "ERROR"
	}
}
