package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauc/audioguide-backend/internal/config"
	"github.com/mauc/audioguide-backend/internal/models"
	"github.com/mauc/audioguide-backend/internal/services"
	"github.com/mauc/audioguide-backend/internal/storage"
)

type stubBackend struct {
	deleted []string
}

func (b *stubBackend) Write(ctx context.Context, dir, filename string, r io.Reader, contentType string) (*storage.StoredFile, error) {
	return &storage.StoredFile{Path: dir + "/" + filename, Key: filename}, nil
}

func (b *stubBackend) Delete(ctx context.Context, paths []string) error {
	b.deleted = append(b.deleted, paths...)
	return nil
}

func (b *stubBackend) ResolveURL(dir, filename string) string { return dir + "/" + filename }

func (b *stubBackend) Name() string { return "stub" }

func rollbackRouter(backend *stubBackend, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	media := services.NewMediaService(&config.Config{}, backend)
	router := gin.New()
	router.POST("/artworks", UploadRollback(media), handler)
	return router
}

func TestUploadRollbackDeletesTrackedFilesOnError(t *testing.T) {
	backend := &stubBackend{}
	router := rollbackRouter(backend, func(c *gin.Context) {
		TrackUploads(c, []models.Asset{
			{Key: "artworks-cover-1.jpg", URL: "u1"},
			{Key: "artworks-guia-br-100000123.mp3", URL: "u2", Lang: "br"},
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record save failed"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/artworks", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, backend.deleted, 2)
	assert.Contains(t, backend.deleted, "images/artworks/artworks-cover-1.jpg")
	assert.Contains(t, backend.deleted, "audios/artworks/guia/br/artworks-guia-br-100000123.mp3")
}

func TestUploadRollbackKeepsFilesOnSuccess(t *testing.T) {
	backend := &stubBackend{}
	router := rollbackRouter(backend, func(c *gin.Context) {
		TrackUploads(c, []models.Asset{{Key: "artworks-cover-1.jpg", URL: "u1"}})
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/artworks", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, backend.deleted)
}

func TestUploadRollbackNoTrackedFiles(t *testing.T) {
	backend := &stubBackend{}
	router := rollbackRouter(backend, func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad input"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/artworks", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, backend.deleted)
}
