package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/config"
	"github.com/mauc/audioguide-backend/internal/models"
	"github.com/mauc/audioguide-backend/internal/storage"
)

// fakeBackend is an in-memory Backend that can be told to fail writes
// for keys containing a marker substring.
type fakeBackend struct {
	written map[string][]byte
	deleted []string
	failOn  string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{written: map[string][]byte{}}
}

func (b *fakeBackend) Write(ctx context.Context, dir, filename string, r io.Reader, contentType string) (*storage.StoredFile, error) {
	if b.failOn != "" && strings.Contains(filename, b.failOn) {
		return nil, errors.New("backend write refused")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	path := dir + "/" + filename
	b.written[path] = data
	return &storage.StoredFile{
		Path: path,
		Key:  filename,
		Size: int64(len(data)),
		URL:  "http://cdn.test/" + path,
	}, nil
}

func (b *fakeBackend) Delete(ctx context.Context, paths []string) error {
	for _, p := range paths {
		delete(b.written, p)
		b.deleted = append(b.deleted, p)
	}
	return nil
}

func (b *fakeBackend) ResolveURL(dir, filename string) string {
	return "http://cdn.test/" + dir + "/" + filename
}

func (b *fakeBackend) Name() string { return "fake" }

func newTestMediaService(backend storage.Backend) *MediaService {
	cfg := &config.Config{MaxFileSize: 10 * 1024 * 1024}
	return NewMediaService(cfg, backend)
}

func TestProcessFormWritesWholeBatch(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestMediaService(backend)

	form := map[string][]Upload{
		"image": {
			{Field: "image", Name: "cover.jpg", ContentType: "image/jpeg", Data: []byte("img")},
		},
		"audioGuia": {
			{Field: "audioGuia", Name: "guia-br.mp3", ContentType: "audio/mpeg", Data: []byte("brbr")},
			{Field: "audioGuia", Name: "Guia-EN.mp3", ContentType: "audio/mpeg", Data: []byte("enen")},
		},
	}

	set, err := svc.ProcessForm(context.Background(), "artworks", form)
	require.NoError(t, err)
	require.NotNil(t, set)

	assert.False(t, set.Image.IsZero())
	assert.Equal(t, "cover.jpg", set.Image.Name)
	assert.Equal(t, int64(3), set.Image.Size)
	assert.Empty(t, set.Image.Lang)

	guia := set.AudioFor("audioGuia")
	require.Len(t, guia, 2)
	assert.Equal(t, "br", guia[0].Lang)
	assert.Equal(t, "en", guia[1].Lang)

	assert.Len(t, set.All(), 3)
	assert.Len(t, backend.written, 3)

	for path := range backend.written {
		if strings.HasSuffix(path, ".jpg") {
			assert.True(t, strings.HasPrefix(path, "images/artworks/"))
		} else {
			assert.True(t, strings.HasPrefix(path, "audios/artworks/guia/"))
		}
	}
}

func TestProcessFormEmptyFormIsNoop(t *testing.T) {
	svc := newTestMediaService(newFakeBackend())
	set, err := svc.ProcessForm(context.Background(), "artworks", nil)
	require.NoError(t, err)
	assert.Nil(t, set)
}

func TestProcessFormRejectsBadMimeBeforeWriting(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestMediaService(backend)

	form := map[string][]Upload{
		"image": {
			{Field: "image", Name: "cover.gif", ContentType: "image/gif", Data: []byte("img")},
		},
	}

	_, err := svc.ProcessForm(context.Background(), "artworks", form)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, backend.written)
}

func TestProcessFormOneBadFileRejectsWholeBatch(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestMediaService(backend)

	form := map[string][]Upload{
		"audioDesc": {
			{Field: "audioDesc", Name: "desc-br.mp3", ContentType: "audio/mpeg", Data: []byte("ok")},
			{Field: "audioDesc", Name: "desc-en.ogg", ContentType: "audio/ogg", Data: []byte("bad")},
		},
	}

	_, err := svc.ProcessForm(context.Background(), "artworks", form)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, backend.written)
}

func TestProcessFormRejectsMissingLangTag(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestMediaService(backend)

	form := map[string][]Upload{
		"audioGuia": {
			{Field: "audioGuia", Name: "track.mp3", ContentType: "audio/mpeg", Data: []byte("x")},
		},
	}

	_, err := svc.ProcessForm(context.Background(), "artworks", form)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, backend.written)
}

func TestProcessFormRejectsOversizedFile(t *testing.T) {
	backend := newFakeBackend()
	svc := NewMediaService(&config.Config{MaxFileSize: 4}, backend)

	form := map[string][]Upload{
		"image": {
			{Field: "image", Name: "cover.jpg", ContentType: "image/jpeg", Data: []byte("too big")},
		},
	}

	_, err := svc.ProcessForm(context.Background(), "artworks", form)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, backend.written)
}

func TestProcessFormRollsBackSiblingsOnWriteFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.failOn = "guia-en"
	svc := newTestMediaService(backend)

	form := map[string][]Upload{
		"audioGuia": {
			{Field: "audioGuia", Name: "guia-br.mp3", ContentType: "audio/mpeg", Data: []byte("br")},
			{Field: "audioGuia", Name: "guia-en.mp3", ContentType: "audio/mpeg", Data: []byte("en")},
		},
	}

	_, err := svc.ProcessForm(context.Background(), "artworks", form)
	require.Error(t, err)
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))

	// The br track written before the failure must be gone again.
	assert.Empty(t, backend.written)
	assert.Len(t, backend.deleted, 1)
	assert.Contains(t, backend.deleted[0], "guia/br/")
}

func TestRollbackDeletesWrittenAssets(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestMediaService(backend)

	assets := []models.Asset{
		{Key: "artworks-cover-1.jpg", URL: "u1"},
		{Key: "artworks-guia-br-100000123.mp3", URL: "u2", Lang: "br"},
	}
	svc.Rollback(context.Background(), assets)

	require.Len(t, backend.deleted, 2)
	assert.Contains(t, backend.deleted, "images/artworks/artworks-cover-1.jpg")
	assert.Contains(t, backend.deleted, "audios/artworks/guia/br/artworks-guia-br-100000123.mp3")
}

func TestRollbackEmptyIsNoop(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestMediaService(backend)
	svc.Rollback(context.Background(), nil)
	assert.Empty(t, backend.deleted)
}

func TestCleanupStale(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestMediaService(backend)

	stale := []models.Asset{{Key: "artworks-desc-en-100000123.mp3", URL: "u", Lang: "en"}}
	svc.CleanupStale(context.Background(), stale)

	require.Len(t, backend.deleted, 1)
	assert.Equal(t, "audios/artworks/desc/en/artworks-desc-en-100000123.mp3", backend.deleted[0])
}

func TestDeleteContextCarriesBackend(t *testing.T) {
	backend := newFakeBackend()
	svc := newTestMediaService(backend)

	ctx := svc.DeleteContext(context.Background())
	got, ok := storage.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, storage.Backend(backend), got)
}
