package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/security"
)

const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// Auth validates the Bearer token and exposes the caller's identity to
// downstream handlers.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentification requise.",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		claims, err := security.ValidateJWT(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session invalide ou expirée.",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin gates a route to ADMIN accounts. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Accès réservé aux administrateurs.",
				"code":  "FORBIDDEN",
			})
			return
		}
		c.Next()
	}
}
