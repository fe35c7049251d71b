package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/services"
	"github.com/mauc/audioguide-backend/pkg/mediapath"
)

// Per-field file count ceilings: one cover image, two audio tracks per
// subrole (one per language).
var uploadFieldLimits = map[string]int{
	"image":     1,
	"audioDesc": 2,
	"audioGuia": 2,
}

// formUploads pulls the named file fields out of a multipart request
// and buffers them for the media pipeline. Non-multipart requests yield
// an empty map; the mimetype is sniffed from content, falling back to
// the declared header when sniffing is inconclusive.
func formUploads(c *gin.Context, fields ...string) (map[string][]services.Upload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperr.Validationf("invalid multipart form: %v", err)
	}

	out := make(map[string][]services.Upload)
	for _, field := range fields {
		files := form.File[field]
		if len(files) == 0 {
			continue
		}
		if max, ok := uploadFieldLimits[field]; ok && len(files) > max {
			return nil, apperr.Validationf("field %s accepts at most %d file(s)", field, max)
		}
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				return nil, apperr.Internal("failed to open uploaded file", err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, apperr.Internal("failed to read uploaded file", err)
			}

			contentType := http.DetectContentType(data)
			if contentType == "application/octet-stream" {
				if declared := fh.Header.Get("Content-Type"); declared != "" {
					contentType = declared
				}
			}

			out[field] = append(out[field], services.Upload{
				Field:       field,
				Name:        fh.Filename,
				ContentType: contentType,
				Data:        data,
			})
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// ownerTypeFor derives the storage owner segment from the matched
// route, e.g. /api/v1/artworks/:id resolves to "artworks".
func ownerTypeFor(c *gin.Context) (string, error) {
	owner, err := mediapath.OwnerFromPath(c.FullPath())
	if err != nil {
		return "", apperr.Internal("cannot resolve owner type from route", err)
	}
	return owner, nil
}
