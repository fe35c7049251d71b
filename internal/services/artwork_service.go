package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/models"
)

// ArtworkInput carries the writable fields of an artwork. Nil pointers
// leave the current value untouched on update.
type ArtworkInput struct {
	Title       *string
	Description *string
	Author      *string
	Support     *string
	Year        *string
	Dimension   *string
	Archived    *bool
}

type ArtworkService struct {
	db    *gorm.DB
	media *MediaService
}

func NewArtworkService(db *gorm.DB, media *MediaService) *ArtworkService {
	return &ArtworkService{db: db, media: media}
}

func (s *ArtworkService) Create(ctx context.Context, in ArtworkInput, set *MediaSet) (*models.Artwork, error) {
	if in.Title == nil || *in.Title == "" {
		return nil, apperr.Validationf("title is required")
	}

	aw := &models.Artwork{}
	applyArtworkInput(aw, in)
	if set != nil {
		aw.Image = set.Image
		aw.AudioDesc = set.AudioFor("audioDesc")
		aw.AudioGuia = set.AudioFor("audioGuia")
	}

	if err := s.db.WithContext(ctx).Create(aw).Error; err != nil {
		return nil, apperr.Internal("failed to create artwork", err)
	}
	return aw, nil
}

func (s *ArtworkService) GetByID(ctx context.Context, id uuid.UUID) (*models.Artwork, error) {
	var aw models.Artwork
	if err := s.db.WithContext(ctx).First(&aw, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("artwork not found")
		}
		return nil, apperr.Internal("failed to load artwork", err)
	}
	return &aw, nil
}

func (s *ArtworkService) List(ctx context.Context, page, limit int) ([]models.Artwork, Pagination, error) {
	return s.listWhere(s.db.WithContext(ctx).Model(&models.Artwork{}), page, limit)
}

func (s *ArtworkService) Search(ctx context.Context, query string, page, limit int) ([]models.Artwork, Pagination, error) {
	pattern := "%" + query + "%"
	q := s.db.WithContext(ctx).Model(&models.Artwork{}).
		Where("title ILIKE ? OR description ILIKE ? OR author ILIKE ? OR year ILIKE ?",
			pattern, pattern, pattern, pattern)
	return s.listWhere(q, page, limit)
}

func (s *ArtworkService) listWhere(q *gorm.DB, page, limit int) ([]models.Artwork, Pagination, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to count artworks", err)
	}

	var artworks []models.Artwork
	if err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&artworks).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to list artworks", err)
	}
	return artworks, paginate(page, limit, total), nil
}

// Update applies the input and merges uploaded media into the record.
// A new image replaces the old one, new audio tracks replace same-
// language entries and append the rest. Superseded files are removed
// only after the record saves.
func (s *ArtworkService) Update(ctx context.Context, id uuid.UUID, in ArtworkInput, set *MediaSet) (*models.Artwork, error) {
	aw, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyArtworkInput(aw, in)

	var stale []models.Asset
	if set != nil {
		if !set.Image.IsZero() {
			if !aw.Image.IsZero() {
				stale = append(stale, aw.Image)
			}
			aw.Image = set.Image
		}
		if incoming := set.AudioFor("audioDesc"); len(incoming) > 0 {
			merged := aw.AudioDesc.Merge(incoming)
			stale = append(stale, aw.AudioDesc.Stale(merged)...)
			aw.AudioDesc = merged
		}
		if incoming := set.AudioFor("audioGuia"); len(incoming) > 0 {
			merged := aw.AudioGuia.Merge(incoming)
			stale = append(stale, aw.AudioGuia.Stale(merged)...)
			aw.AudioGuia = merged
		}
	}

	if err := s.db.WithContext(ctx).Save(aw).Error; err != nil {
		return nil, apperr.Internal("failed to update artwork", err)
	}
	s.media.CleanupStale(ctx, stale)
	return aw, nil
}

// Delete removes the record. The model delete hook cascades removal of
// every asset the artwork owns through the backend carried in the
// context.
func (s *ArtworkService) Delete(ctx context.Context, id uuid.UUID) error {
	aw, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(s.media.DeleteContext(ctx)).Delete(aw).Error; err != nil {
		return apperr.Internal("failed to delete artwork", err)
	}
	return nil
}

func applyArtworkInput(aw *models.Artwork, in ArtworkInput) {
	if in.Title != nil {
		aw.Title = *in.Title
	}
	if in.Description != nil {
		aw.Description = *in.Description
	}
	if in.Author != nil {
		aw.Author = *in.Author
	}
	if in.Support != nil {
		aw.Support = *in.Support
	}
	if in.Year != nil {
		aw.Year = *in.Year
	}
	if in.Dimension != nil {
		aw.Dimension = *in.Dimension
	}
	if in.Archived != nil {
		aw.Archived = *in.Archived
	}
}
