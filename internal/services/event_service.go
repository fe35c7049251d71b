package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/models"
)

type EventInput struct {
	Title       *string
	Description *string
	Date        *time.Time
	Archived    *bool
}

type EventService struct {
	db    *gorm.DB
	media *MediaService
}

func NewEventService(db *gorm.DB, media *MediaService) *EventService {
	return &EventService{db: db, media: media}
}

func (s *EventService) Create(ctx context.Context, in EventInput, set *MediaSet) (*models.Event, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, apperr.Validationf("title is required")
	}

	event := &models.Event{}
	applyEventInput(event, in)
	if set != nil {
		event.Image = set.Image
	}

	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, apperr.Internal("failed to create event", err)
	}
	return event, nil
}

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("event not found")
		}
		return nil, apperr.Internal("failed to load event", err)
	}
	return &event, nil
}

func (s *EventService) List(ctx context.Context, page, limit int) ([]models.Event, Pagination, error) {
	return s.listWhere(s.db.WithContext(ctx).Model(&models.Event{}), page, limit)
}

func (s *EventService) Search(ctx context.Context, query string, page, limit int) ([]models.Event, Pagination, error) {
	pattern := "%" + query + "%"
	q := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	return s.listWhere(q, page, limit)
}

func (s *EventService) listWhere(q *gorm.DB, page, limit int) ([]models.Event, Pagination, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to count events", err)
	}

	var events []models.Event
	if err := q.Order("date DESC NULLS LAST").
		Offset((page - 1) * limit).Limit(limit).
		Find(&events).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to list events", err)
	}
	return events, paginate(page, limit, total), nil
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, in EventInput, set *MediaSet) (*models.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyEventInput(event, in)

	var stale []models.Asset
	if set != nil && !set.Image.IsZero() {
		if !event.Image.IsZero() {
			stale = append(stale, event.Image)
		}
		event.Image = set.Image
	}

	if err := s.db.WithContext(ctx).Save(event).Error; err != nil {
		return nil, apperr.Internal("failed to update event", err)
	}
	s.media.CleanupStale(ctx, stale)
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(s.media.DeleteContext(ctx)).Delete(event).Error; err != nil {
		return apperr.Internal("failed to delete event", err)
	}
	return nil
}

func applyEventInput(event *models.Event, in EventInput) {
	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Date != nil {
		event.Date = in.Date
	}
	if in.Archived != nil {
		event.Archived = *in.Archived
	}
}
