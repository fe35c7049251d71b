package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/services"
)

// respondError maps the error taxonomy onto HTTP statuses. Internal
// details are logged, never echoed to the client.
func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperr.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperr.KindStorage:
		log.Printf("ERROR: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "storage backend unavailable"})
	default:
		log.Printf("ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondList(c *gin.Context, items interface{}, p services.Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": p,
	})
}
