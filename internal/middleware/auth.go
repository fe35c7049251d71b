package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mauc/audioguide-backend/internal/models"
	"github.com/mauc/audioguide-backend/internal/services"
)

const (
	ctxAdminID     = "adminID"
	ctxAccessLevel = "accessLevel"
)

// Auth validates the bearer access token and puts the admin identity on
// the request context.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired access token"})
			c.Abort()
			return
		}

		adminID, err := uuid.Parse(claims.AdminID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			c.Abort()
			return
		}

		c.Set(ctxAdminID, adminID)
		c.Set(ctxAccessLevel, claims.AccessLevel)
		c.Next()
	}
}

// ManagerOnly gates admin management routes to access level 1.
func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		level, exists := c.Get(ctxAccessLevel)
		if !exists || level.(int) != models.AccessLevelManager {
			c.JSON(http.StatusForbidden, gin.H{"error": "manager access level required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminID returns the authenticated admin's ID from the context.
func AdminID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxAdminID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
