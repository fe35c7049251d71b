package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauc/audioguide-backend/internal/middleware"
	"github.com/mauc/audioguide-backend/internal/services"
)

type EventHandler struct {
	eventService *services.EventService
	mediaService *services.MediaService
}

func NewEventHandler(eventService *services.EventService, mediaService *services.MediaService) *EventHandler {
	return &EventHandler{eventService: eventService, mediaService: mediaService}
}

func (h *EventHandler) eventInput(c *gin.Context) (services.EventInput, error) {
	date, err := formTime(c, "date")
	if err != nil {
		return services.EventInput{}, err
	}
	archived, err := formBool(c, "archived")
	if err != nil {
		return services.EventInput{}, err
	}
	return services.EventInput{
		Title:       formString(c, "title"),
		Description: formString(c, "description"),
		Date:        date,
		Archived:    archived,
	}, nil
}

func (h *EventHandler) processMedia(c *gin.Context) (*services.MediaSet, error) {
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

func (h *EventHandler) Create(c *gin.Context) {
	in, err := h.eventInput(c)
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.processMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}
	event, err := h.eventService.Create(c.Request.Context(), in, set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	events, p, err := h.eventService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, events, p)
}

func (h *EventHandler) Search(c *gin.Context) {
	page, limit := pageParams(c)
	events, p, err := h.eventService.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, events, p)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	in, err := h.eventInput(c)
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.processMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}
	event, err := h.eventService.Update(c.Request.Context(), id, in, set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
