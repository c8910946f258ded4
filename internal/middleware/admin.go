package middleware

import (
	"net/http"

	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// RequireAdmin checks that the authenticated principal has the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok || !principal.IsAdmin() {
			common.ErrorResponse(c, http.StatusForbidden, "Accès réservé aux administrateurs", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
