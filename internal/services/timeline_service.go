package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/models"
)

type TimelineInput struct {
	Title       *string
	Description *string
	Events      *models.IDList
}

// TimelineService manages event timelines. Timelines carry no media,
// so there is no asset lifecycle to drive here.
type TimelineService struct {
	db *gorm.DB
}

func NewTimelineService(db *gorm.DB) *TimelineService {
	return &TimelineService{db: db}
}

func (s *TimelineService) Create(ctx context.Context, in TimelineInput) (*models.Timeline, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, apperr.Validationf("title is required")
	}

	tl := &models.Timeline{}
	applyTimelineInput(tl, in)

	if err := s.db.WithContext(ctx).Create(tl).Error; err != nil {
		return nil, apperr.Internal("failed to create timeline", err)
	}
	return tl, nil
}

func (s *TimelineService) GetByID(ctx context.Context, id uuid.UUID) (*models.Timeline, error) {
	var tl models.Timeline
	if err := s.db.WithContext(ctx).First(&tl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("timeline not found")
		}
		return nil, apperr.Internal("failed to load timeline", err)
	}
	return &tl, nil
}

func (s *TimelineService) List(ctx context.Context, page, limit int) ([]models.Timeline, Pagination, error) {
	return s.listWhere(s.db.WithContext(ctx).Model(&models.Timeline{}), page, limit)
}

func (s *TimelineService) Search(ctx context.Context, query string, page, limit int) ([]models.Timeline, Pagination, error) {
	pattern := "%" + query + "%"
	q := s.db.WithContext(ctx).Model(&models.Timeline{}).
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	return s.listWhere(q, page, limit)
}

func (s *TimelineService) listWhere(q *gorm.DB, page, limit int) ([]models.Timeline, Pagination, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to count timelines", err)
	}

	var timelines []models.Timeline
	if err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&timelines).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to list timelines", err)
	}
	return timelines, paginate(page, limit, total), nil
}

func (s *TimelineService) Update(ctx context.Context, id uuid.UUID, in TimelineInput) (*models.Timeline, error) {
	tl, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTimelineInput(tl, in)

	if err := s.db.WithContext(ctx).Save(tl).Error; err != nil {
		return nil, apperr.Internal("failed to update timeline", err)
	}
	return tl, nil
}

func (s *TimelineService) Delete(ctx context.Context, id uuid.UUID) error {
	tl, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(tl).Error; err != nil {
		return apperr.Internal("failed to delete timeline", err)
	}
	return nil
}

func applyTimelineInput(tl *models.Timeline, in TimelineInput) {
	if in.Title != nil {
		tl.Title = *in.Title
	}
	if in.Description != nil {
		tl.Description = *in.Description
	}
	if in.Events != nil {
		tl.Events = *in.Events
	}
}
