package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauc/audioguide-backend/internal/config"
)

func newTestBackend(t *testing.T) *LocalBackend {
	t.Helper()
	cfg := &config.Config{
		LocalAssetsPath: t.TempDir(),
		ServerURL:       "http://localhost:8080/",
	}
	b, err := NewLocalBackend(cfg)
	require.NoError(t, err)
	return b
}

func TestLocalWrite(t *testing.T) {
	b := newTestBackend(t)

	stored, err := b.Write(context.Background(), "images/artworks", "artworks-cover-1.jpg",
		strings.NewReader("fake image bytes"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "images/artworks/artworks-cover-1.jpg", stored.Path)
	assert.Equal(t, "artworks-cover-1.jpg", stored.Key)
	assert.Equal(t, int64(len("fake image bytes")), stored.Size)
	assert.Equal(t, "http://localhost:8080/uploads/images/artworks/artworks-cover-1.jpg", stored.URL)

	data, err := os.ReadFile(filepath.Join(b.root, "images", "artworks", "artworks-cover-1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	// No temp file left behind.
	_, err = os.Stat(filepath.Join(b.root, "images", "artworks", "artworks-cover-1.jpg.part"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalWriteCreatesNestedDirs(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.Write(context.Background(), "audios/artworks/guia/br", "artworks-guia-br-1.mp3",
		strings.NewReader("audio"), "audio/mpeg")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(b.root, "audios", "artworks", "guia", "br", "artworks-guia-br-1.mp3"))
	assert.NoError(t, err)
}

func TestLocalDelete(t *testing.T) {
	b := newTestBackend(t)

	stored, err := b.Write(context.Background(), "images/artworks", "artworks-cover-1.jpg",
		strings.NewReader("x"), "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, b.Delete(context.Background(), []string{stored.Path}))
	_, err = os.Stat(filepath.Join(b.root, "images", "artworks", "artworks-cover-1.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalDeleteMissingFileIsNotAnError(t *testing.T) {
	b := newTestBackend(t)
	assert.NoError(t, b.Delete(context.Background(), []string{"images/artworks/never-existed.jpg"}))
}

func TestLocalDeleteContinuesPastMissing(t *testing.T) {
	b := newTestBackend(t)

	stored, err := b.Write(context.Background(), "images/artworks", "artworks-cover-2.jpg",
		strings.NewReader("x"), "image/jpeg")
	require.NoError(t, err)

	err = b.Delete(context.Background(), []string{"images/artworks/ghost.jpg", stored.Path})
	assert.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(b.root, "images", "artworks", "artworks-cover-2.jpg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestResolveURLTrimsTrailingSlash(t *testing.T) {
	b := newTestBackend(t)
	url := b.ResolveURL("images/artworks", "a.jpg")
	assert.Equal(t, "http://localhost:8080/uploads/images/artworks/a.jpg", url)
}
