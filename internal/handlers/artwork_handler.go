package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauc/audioguide-backend/internal/middleware"
	"github.com/mauc/audioguide-backend/internal/services"
)

type ArtworkHandler struct {
	artworkService *services.ArtworkService
	mediaService   *services.MediaService
	qrService      *services.QRService
}

func NewArtworkHandler(artworkService *services.ArtworkService, mediaService *services.MediaService, qrService *services.QRService) *ArtworkHandler {
	return &ArtworkHandler{
		artworkService: artworkService,
		mediaService:   mediaService,
		qrService:      qrService,
	}
}

func (h *ArtworkHandler) artworkInput(c *gin.Context) (services.ArtworkInput, error) {
	archived, err := formBool(c, "archived")
	if err != nil {
		return services.ArtworkInput{}, err
	}
	return services.ArtworkInput{
		Title:       formString(c, "title"),
		Description: formString(c, "description"),
		Author:      formString(c, "author"),
		Support:     formString(c, "support"),
		Year:        formString(c, "year"),
		Dimension:   formString(c, "dimension"),
		Archived:    archived,
	}, nil
}

// Create handles POST /artworks: plain fields plus up to one image and
// two audio tracks per subrole in the same multipart request.
func (h *ArtworkHandler) Create(c *gin.Context) {
	in, err := h.artworkInput(c)
	if err != nil {
		respondError(c, err)
		return
	}

	form, err := formUploads(c, "image", "audioDesc", "audioGuia")
	if err != nil {
		respondError(c, err)
		return
	}

	var set *services.MediaSet
	if form != nil {
		owner, err := ownerTypeFor(c)
		if err != nil {
			respondError(c, err)
			return
		}
		set, err = h.mediaService.ProcessForm(c.Request.Context(), owner, form)
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.TrackUploads(c, set.All())
	}

	artwork, err := h.artworkService.Create(c.Request.Context(), in, set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artwork)
}

func (h *ArtworkHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	artwork, err := h.artworkService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artwork)
}

func (h *ArtworkHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	artworks, p, err := h.artworkService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, artworks, p)
}

func (h *ArtworkHandler) Search(c *gin.Context) {
	page, limit := pageParams(c)
	artworks, p, err := h.artworkService.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, artworks, p)
}

func (h *ArtworkHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	in, err := h.artworkInput(c)
	if err != nil {
		respondError(c, err)
		return
	}

	form, err := formUploads(c, "image", "audioDesc", "audioGuia")
	if err != nil {
		respondError(c, err)
		return
	}

	var set *services.MediaSet
	if form != nil {
		owner, err := ownerTypeFor(c)
		if err != nil {
			respondError(c, err)
			return
		}
		set, err = h.mediaService.ProcessForm(c.Request.Context(), owner, form)
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.TrackUploads(c, set.All())
	}

	artwork, err := h.artworkService.Update(c.Request.Context(), id, in, set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artwork)
}

func (h *ArtworkHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.artworkService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// QRPlacard streams a printable PDF with the artwork's QR code.
func (h *ArtworkHandler) QRPlacard(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	artwork, err := h.artworkService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	pdf, err := h.qrService.GenerateArtworkQRPDF(artwork)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=artwork-%s.pdf", artwork.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
