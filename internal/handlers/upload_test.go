package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauc/audioguide-backend/internal/apperr"
)

func multipartContext(t *testing.T, build func(w *multipart.Writer)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	build(w)
	require.NoError(t, w.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/artworks", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.Request = req
	return c
}

func TestFormUploadsExtractsNamedFields(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		img, err := w.CreateFormFile("image", "cover.jpg")
		require.NoError(t, err)
		_, err = img.Write([]byte("image bytes"))
		require.NoError(t, err)

		audio, err := w.CreateFormFile("audioGuia", "guia-br.mp3")
		require.NoError(t, err)
		_, err = audio.Write([]byte("audio bytes"))
		require.NoError(t, err)

		require.NoError(t, w.WriteField("title", "Mona Lisa"))
	})

	form, err := formUploads(c, "image", "audioDesc", "audioGuia")
	require.NoError(t, err)
	require.NotNil(t, form)

	require.Len(t, form["image"], 1)
	assert.Equal(t, "cover.jpg", form["image"][0].Name)
	assert.Equal(t, []byte("image bytes"), form["image"][0].Data)

	require.Len(t, form["audioGuia"], 1)
	assert.Empty(t, form["audioDesc"])
}

func TestFormUploadsEnforcesFieldLimits(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		for _, name := range []string{"a.jpg", "b.jpg"} {
			f, err := w.CreateFormFile("image", name)
			require.NoError(t, err)
			_, err = f.Write([]byte("x"))
			require.NoError(t, err)
		}
	})

	_, err := formUploads(c, "image")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestFormUploadsAllowsTwoAudioTracks(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		for _, name := range []string{"guia-br.mp3", "guia-en.mp3"} {
			f, err := w.CreateFormFile("audioGuia", name)
			require.NoError(t, err)
			_, err = f.Write([]byte("x"))
			require.NoError(t, err)
		}
	})

	form, err := formUploads(c, "audioGuia")
	require.NoError(t, err)
	assert.Len(t, form["audioGuia"], 2)
}

func TestFormUploadsNonMultipartRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/timelines", bytes.NewReader([]byte(`{"title":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	form, err := formUploads(c, "image")
	require.NoError(t, err)
	assert.Nil(t, form)
}

func TestFormUploadsNoFilesYieldsNil(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("title", "plain fields only"))
	})

	form, err := formUploads(c, "image", "audioDesc", "audioGuia")
	require.NoError(t, err)
	assert.Nil(t, form)
}
