package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/models"
	"github.com/mauc/audioguide-backend/internal/services"
)

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.Validationf("invalid id")
	}
	return id, nil
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(services.DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultPageSize)))
	return page, limit
}

// formString reads an optional form field, distinguishing absent from
// empty so updates can clear values.
func formString(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

func formBool(c *gin.Context, key string) (*bool, error) {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, apperr.Validationf("field %s must be a boolean", key)
	}
	return &b, nil
}

func formInt(c *gin.Context, key string) (*int, error) {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, apperr.Validationf("field %s must be an integer", key)
	}
	return &n, nil
}

// formTime accepts RFC 3339 timestamps or plain dates.
func formTime(c *gin.Context, key string) (*time.Time, error) {
	v, ok := c.GetPostForm(key)
	if !ok || v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, apperr.Validationf("field %s must be an RFC 3339 timestamp or YYYY-MM-DD date", key)
}

// formIDList parses a comma-separated list of UUIDs. An explicit empty
// value clears the list.
func formIDList(c *gin.Context, key string) (*models.IDList, error) {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil, nil
	}
	list := models.IDList{}
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, apperr.Validationf("field %s contains an invalid id %q", key, part)
		}
		list = append(list, id)
	}
	return &list, nil
}
