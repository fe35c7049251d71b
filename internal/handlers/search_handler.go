package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/services"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search handles GET /search?q= across every content entity.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, apperr.Validationf("query parameter q is required"))
		return
	}
	page, limit := pageParams(c)
	results, p, err := h.searchService.Search(c.Request.Context(), query, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, results, p)
}
