package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/agrobissau/agrobissau-backend/internal/authz"
	"github.com/agrobissau/agrobissau-backend/internal/common"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// JWTAuth JWT authentication middleware. Stores a typed Principal in
// the context; handlers read it back with GetPrincipal.
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyRequest(c, jwtManager)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, "Token expiré", nil)
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, "Authentification requise", nil)
			}
			c.Abort()
			return
		}

		c.Set(principalKey, authz.Principal{
			UserID: claims.UserID,
			Name:   claims.Name,
			Role:   domain.UserRole(claims.Role),
		})
		c.Next()
	}
}

// OptionalAuth resolves a Principal when a valid token is present but
// lets anonymous requests through. Used where the response merely
// varies by viewer (favorite flags, view counting).
func OptionalAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := verifyRequest(c, jwtManager); err == nil {
			c.Set(principalKey, authz.Principal{
				UserID: claims.UserID,
				Name:   claims.Name,
				Role:   domain.UserRole(claims.Role),
			})
		}
		c.Next()
	}
}

func verifyRequest(c *gin.Context, jwtManager *jwt.Manager) (*jwt.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, jwt.ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, jwt.ErrInvalidToken
	}

	return jwtManager.VerifyToken(parts[1])
}

// GetPrincipal extracts the authenticated principal from the context
func GetPrincipal(c *gin.Context) (authz.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return authz.Principal{}, false
	}
	principal, ok := value.(authz.Principal)
	return principal, ok
}
