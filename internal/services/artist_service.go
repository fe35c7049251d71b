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

type ArtistInput struct {
	Name        *string
	Description *string
	Biography   *string
	BirthDate   *time.Time
	Artworks    *models.IDList
}

type ArtistService struct {
	db    *gorm.DB
	media *MediaService
}

func NewArtistService(db *gorm.DB, media *MediaService) *ArtistService {
	return &ArtistService{db: db, media: media}
}

func (s *ArtistService) Create(ctx context.Context, in ArtistInput, set *MediaSet) (*models.Artist, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, apperr.Validationf("name is required")
	}

	artist := &models.Artist{}
	applyArtistInput(artist, in)
	if set != nil {
		artist.Image = set.Image
		artist.AudioGuia = set.AudioFor("audioGuia")
	}

	if err := s.db.WithContext(ctx).Create(artist).Error; err != nil {
		return nil, apperr.Internal("failed to create artist", err)
	}
	return artist, nil
}

func (s *ArtistService) GetByID(ctx context.Context, id uuid.UUID) (*models.Artist, error) {
	var artist models.Artist
	if err := s.db.WithContext(ctx).First(&artist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("artist not found")
		}
		return nil, apperr.Internal("failed to load artist", err)
	}
	return &artist, nil
}

func (s *ArtistService) List(ctx context.Context, page, limit int) ([]models.Artist, Pagination, error) {
	return s.listWhere(s.db.WithContext(ctx).Model(&models.Artist{}), page, limit)
}

func (s *ArtistService) Search(ctx context.Context, query string, page, limit int) ([]models.Artist, Pagination, error) {
	pattern := "%" + query + "%"
	q := s.db.WithContext(ctx).Model(&models.Artist{}).
		Where("name ILIKE ? OR description ILIKE ? OR biography ILIKE ?", pattern, pattern, pattern)
	return s.listWhere(q, page, limit)
}

func (s *ArtistService) listWhere(q *gorm.DB, page, limit int) ([]models.Artist, Pagination, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to count artists", err)
	}

	var artists []models.Artist
	if err := q.Order("name ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&artists).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to list artists", err)
	}
	return artists, paginate(page, limit, total), nil
}

func (s *ArtistService) Update(ctx context.Context, id uuid.UUID, in ArtistInput, set *MediaSet) (*models.Artist, error) {
	artist, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyArtistInput(artist, in)

	var stale []models.Asset
	if set != nil {
		if !set.Image.IsZero() {
			if !artist.Image.IsZero() {
				stale = append(stale, artist.Image)
			}
			artist.Image = set.Image
		}
		if incoming := set.AudioFor("audioGuia"); len(incoming) > 0 {
			merged := artist.AudioGuia.Merge(incoming)
			stale = append(stale, artist.AudioGuia.Stale(merged)...)
			artist.AudioGuia = merged
		}
	}

	if err := s.db.WithContext(ctx).Save(artist).Error; err != nil {
		return nil, apperr.Internal("failed to update artist", err)
	}
	s.media.CleanupStale(ctx, stale)
	return artist, nil
}

func (s *ArtistService) Delete(ctx context.Context, id uuid.UUID) error {
	artist, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(s.media.DeleteContext(ctx)).Delete(artist).Error; err != nil {
		return apperr.Internal("failed to delete artist", err)
	}
	return nil
}

func applyArtistInput(artist *models.Artist, in ArtistInput) {
	if in.Name != nil {
		artist.Name = *in.Name
	}
	if in.Description != nil {
		artist.Description = *in.Description
	}
	if in.Biography != nil {
		artist.Biography = *in.Biography
	}
	if in.BirthDate != nil {
		artist.BirthDate = in.BirthDate
	}
	if in.Artworks != nil {
		artist.Artworks = *in.Artworks
	}
}
