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

type ExpositionInput struct {
	Title       *string
	Type        *int
	Description *string
	Place       *string
	DateStarts  *time.Time
	DateEnds    *time.Time
	Archived    *bool
	Artworks    *models.IDList
}

type ExpositionService struct {
	db    *gorm.DB
	media *MediaService
}

func NewExpositionService(db *gorm.DB, media *MediaService) *ExpositionService {
	return &ExpositionService{db: db, media: media}
}

func (s *ExpositionService) Create(ctx context.Context, in ExpositionInput, set *MediaSet) (*models.Exposition, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, apperr.Validationf("title is required")
	}
	if in.Type != nil && *in.Type != models.ExpositionLongRunning && *in.Type != models.ExpositionTemporary {
		return nil, apperr.Validationf("type must be %d (long-running) or %d (temporary)",
			models.ExpositionLongRunning, models.ExpositionTemporary)
	}

	expo := &models.Exposition{Type: models.ExpositionLongRunning}
	applyExpositionInput(expo, in)
	if set != nil {
		expo.Image = set.Image
	}

	if err := s.db.WithContext(ctx).Create(expo).Error; err != nil {
		return nil, apperr.Internal("failed to create exposition", err)
	}
	return expo, nil
}

func (s *ExpositionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Exposition, error) {
	var expo models.Exposition
	if err := s.db.WithContext(ctx).First(&expo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("exposition not found")
		}
		return nil, apperr.Internal("failed to load exposition", err)
	}
	return &expo, nil
}

func (s *ExpositionService) List(ctx context.Context, page, limit int) ([]models.Exposition, Pagination, error) {
	return s.listWhere(s.db.WithContext(ctx).Model(&models.Exposition{}), page, limit)
}

func (s *ExpositionService) Search(ctx context.Context, query string, page, limit int) ([]models.Exposition, Pagination, error) {
	pattern := "%" + query + "%"
	q := s.db.WithContext(ctx).Model(&models.Exposition{}).
		Where("title ILIKE ? OR description ILIKE ? OR place ILIKE ?", pattern, pattern, pattern)
	return s.listWhere(q, page, limit)
}

func (s *ExpositionService) listWhere(q *gorm.DB, page, limit int) ([]models.Exposition, Pagination, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to count expositions", err)
	}

	var expos []models.Exposition
	if err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&expos).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to list expositions", err)
	}
	return expos, paginate(page, limit, total), nil
}

func (s *ExpositionService) Update(ctx context.Context, id uuid.UUID, in ExpositionInput, set *MediaSet) (*models.Exposition, error) {
	if in.Type != nil && *in.Type != models.ExpositionLongRunning && *in.Type != models.ExpositionTemporary {
		return nil, apperr.Validationf("type must be %d (long-running) or %d (temporary)",
			models.ExpositionLongRunning, models.ExpositionTemporary)
	}

	expo, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyExpositionInput(expo, in)

	var stale []models.Asset
	if set != nil && !set.Image.IsZero() {
		if !expo.Image.IsZero() {
			stale = append(stale, expo.Image)
		}
		expo.Image = set.Image
	}

	if err := s.db.WithContext(ctx).Save(expo).Error; err != nil {
		return nil, apperr.Internal("failed to update exposition", err)
	}
	s.media.CleanupStale(ctx, stale)
	return expo, nil
}

func (s *ExpositionService) Delete(ctx context.Context, id uuid.UUID) error {
	expo, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(s.media.DeleteContext(ctx)).Delete(expo).Error; err != nil {
		return apperr.Internal("failed to delete exposition", err)
	}
	return nil
}

func applyExpositionInput(expo *models.Exposition, in ExpositionInput) {
	if in.Title != nil {
		expo.Title = *in.Title
	}
	if in.Type != nil {
		expo.Type = *in.Type
	}
	if in.Description != nil {
		expo.Description = *in.Description
	}
	if in.Place != nil {
		expo.Place = *in.Place
	}
	if in.DateStarts != nil {
		expo.DateStarts = in.DateStarts
	}
	if in.DateEnds != nil {
		expo.DateEnds = in.DateEnds
	}
	if in.Archived != nil {
		expo.Archived = *in.Archived
	}
	if in.Artworks != nil {
		expo.Artworks = *in.Artworks
	}
}
