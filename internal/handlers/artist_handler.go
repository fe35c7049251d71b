package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauc/audioguide-backend/internal/middleware"
	"github.com/mauc/audioguide-backend/internal/services"
)

type ArtistHandler struct {
	artistService *services.ArtistService
	mediaService  *services.MediaService
}

func NewArtistHandler(artistService *services.ArtistService, mediaService *services.MediaService) *ArtistHandler {
	return &ArtistHandler{artistService: artistService, mediaService: mediaService}
}

func (h *ArtistHandler) artistInput(c *gin.Context) (services.ArtistInput, error) {
	birthDate, err := formTime(c, "birth_date")
	if err != nil {
		return services.ArtistInput{}, err
	}
	artworks, err := formIDList(c, "artworks")
	if err != nil {
		return services.ArtistInput{}, err
	}
	return services.ArtistInput{
		Name:        formString(c, "name"),
		Description: formString(c, "description"),
		Biography:   formString(c, "biography"),
		BirthDate:   birthDate,
		Artworks:    artworks,
	}, nil
}

func (h *ArtistHandler) processMedia(c *gin.Context) (*services.MediaSet, error) {
	form, err := formUploads(c, "image", "audioGuia")
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, nil
	}
	owner, err := ownerTypeFor(c)
	if err != nil {
		return nil, err
	}
	set, err := h.mediaService.ProcessForm(c.Request.Context(), owner, form)
	if err != nil {
		return nil, err
	}
	middleware.TrackUploads(c, set.All())
	return set, nil
}

func (h *ArtistHandler) Create(c *gin.Context) {
	in, err := h.artistInput(c)
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.processMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}
	artist, err := h.artistService.Create(c.Request.Context(), in, set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artist)
}

func (h *ArtistHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	artist, err := h.artistService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artist)
}

func (h *ArtistHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	artists, p, err := h.artistService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, artists, p)
}

func (h *ArtistHandler) Search(c *gin.Context) {
	page, limit := pageParams(c)
	artists, p, err := h.artistService.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, artists, p)
}

func (h *ArtistHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	in, err := h.artistInput(c)
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.processMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}
	artist, err := h.artistService.Update(c.Request.Context(), id, in, set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artist)
}

func (h *ArtistHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.artistService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
