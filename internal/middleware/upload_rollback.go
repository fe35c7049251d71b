package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mauc/audioguide-backend/internal/models"
	"github.com/mauc/audioguide-backend/internal/services"
)

const ctxTrackedUploads = "trackedUploads"

// TrackUploads registers freshly written assets with the rollback
// middleware. Handlers call it right after the upload pipeline succeeds
// so a later failure in the same request cleans the files up.
func TrackUploads(c *gin.Context, assets []models.Asset) {
	if len(assets) == 0 {
		return
	}
	existing, _ := c.Get(ctxTrackedUploads)
	tracked, _ := existing.([]models.Asset)
	c.Set(ctxTrackedUploads, append(tracked, assets...))
}

// UploadRollback deletes every tracked upload when the request ends in
// an error status. It runs for all upload routes unconditionally, so no
// handler can forget to clean up after itself.
func UploadRollback(media *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 400 {
			return
		}
		v, exists := c.Get(ctxTrackedUploads)
		if !exists {
			return
		}
		assets, ok := v.([]models.Asset)
		if !ok || len(assets) == 0 {
			return
		}
		media.Rollback(c.Request.Context(), assets)
	}
}
