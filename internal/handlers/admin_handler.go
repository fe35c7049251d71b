package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/middleware"
	"github.com/mauc/audioguide-backend/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
	mediaService *services.MediaService
}

func NewAdminHandler(adminService *services.AdminService, mediaService *services.MediaService) *AdminHandler {
	return &AdminHandler{adminService: adminService, mediaService: mediaService}
}

func (h *AdminHandler) adminInput(c *gin.Context) (services.AdminInput, error) {
	accessLevel, err := formInt(c, "access_level")
	if err != nil {
		return services.AdminInput{}, err
	}
	return services.AdminInput{
		Name:        formString(c, "name"),
		Email:       formString(c, "email"),
		Password:    formString(c, "password"),
		AccessLevel: accessLevel,
	}, nil
}

func (h *AdminHandler) processMedia(c *gin.Context) (*services.MediaSet, error) {
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

func (h *AdminHandler) Create(c *gin.Context) {
	in, err := h.adminInput(c)
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.processMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}
	admin, err := h.adminService.Create(c.Request.Context(), in, set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

func (h *AdminHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	admin, err := h.adminService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	admins, p, err := h.adminService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, admins, p)
}

func (h *AdminHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	in, err := h.adminInput(c)
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.processMedia(c)
	if err != nil {
		respondError(c, err)
		return
	}
	admin, err := h.adminService.Update(c.Request.Context(), id, in, set)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	actorID, ok := middleware.AdminID(c)
	if !ok {
		respondError(c, apperr.Unauthorizedf("missing authenticated admin"))
		return
	}
	if err := h.adminService.Delete(c.Request.Context(), id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
