package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauc/audioguide-backend/internal/middleware"
	"github.com/mauc/audioguide-backend/internal/services"
)

type ExpositionHandler struct {
	expositionService *services.ExpositionService
	mediaService      *services.MediaService
}

func NewExpositionHandler(expositionService *services.ExpositionService, mediaService *services.MediaService) *ExpositionHandler {
	return &ExpositionHandler{expositionService: expositionService, mediaService: mediaService}
}

func (h *ExpositionHandler) expositionInput(c *gin.Context) (services.ExpositionInput, error) {
	expoType, err := formInt(c, "type")
	if err != nil {
		return services.ExpositionInput{}, err
	}
	dateStarts, err := formTime(c, "date_starts")
	if err != nil {
		return services.ExpositionInput{}, err
	}
	dateEnds, err := formTime(c, "date_ends")
	if err != nil {
		return services.ExpositionInput{}, err
	}
	archived, err := formBool(c, "archived")
	if err != nil {
		return services.ExpositionInput{}, err
	}
	artworks, err := formIDList(c, "artworks")
	if err != nil {
		return services.ExpositionInput{}, err
	}
	return services.ExpositionInput{
		Title:       formString(c, "title"),
		Type:        expoType,
		Description: formString(c, "description"),
		Place:       formString(c, "place"),
		DateStarts:  dateStarts,
		DateEnds:    dateEnds,
		Archived:    archived,
		Artworks:    artworks,
	}, nil
}

func (h *ExpositionHandler) processMedia(c *gin.Context) (*services.MediaSet, error) {
	form, err := formUploads(c, "image")
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

func (h *ExpositionHandler) Create(c *gin.Context) {
	in, err := h.expositionInput(c)
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.processMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}
	expo, err := h.expositionService.Create(c.Request.Context(), in, set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expo)
}

func (h *ExpositionHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	expo, err := h.expositionService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expo)
}

func (h *ExpositionHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	expos, p, err := h.expositionService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, expos, p)
}

func (h *ExpositionHandler) Search(c *gin.Context) {
	page, limit := pageParams(c)
	expos, p, err := h.expositionService.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, expos, p)
}

func (h *ExpositionHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	in, err := h.expositionInput(c)
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.processMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}
	expo, err := h.expositionService.Update(c.Request.Context(), id, in, set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expo)
}

func (h *ExpositionHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.expositionService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
