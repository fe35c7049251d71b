package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mauc/audioguide-backend/internal/models"
	"github.com/mauc/audioguide-backend/internal/services"
)

// TimelineHandler serves timeline CRUD. Timelines carry no media, so
// requests are plain JSON.
type TimelineHandler struct {
	timelineService *services.TimelineService
}

func NewTimelineHandler(timelineService *services.TimelineService) *TimelineHandler {
	return &TimelineHandler{timelineService: timelineService}
}

type timelineRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Events      *[]uuid.UUID `json:"events"`
}

func (r timelineRequest) input() services.TimelineInput {
	in := services.TimelineInput{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Events != nil {
		list := models.IDList(*r.Events)
		in.Events = &list
	}
	return in
}

func (h *TimelineHandler) Create(c *gin.Context) {
	var req timelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tl, err := h.timelineService.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tl)
}

func (h *TimelineHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	tl, err := h.timelineService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tl)
}

func (h *TimelineHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	timelines, p, err := h.timelineService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, timelines, p)
}

func (h *TimelineHandler) Search(c *gin.Context) {
	page, limit := pageParams(c)
	timelines, p, err := h.timelineService.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, timelines, p)
}

func (h *TimelineHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req timelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tl, err := h.timelineService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tl)
}

func (h *TimelineHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.timelineService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
