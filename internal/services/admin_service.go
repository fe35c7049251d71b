package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/config"
	"github.com/mauc/audioguide-backend/internal/models"
	"github.com/mauc/audioguide-backend/pkg/crypto"
	"github.com/mauc/audioguide-backend/pkg/validation"
)

type AdminInput struct {
	Name        *string
	Email       *string
	Password    *string
	AccessLevel *int
}

type AdminService struct {
	db    *gorm.DB
	cfg   *config.Config
	media *MediaService
}

func NewAdminService(db *gorm.DB, cfg *config.Config, media *MediaService) *AdminService {
	return &AdminService{db: db, cfg: cfg, media: media}
}

// CreateDefaultAdmin seeds the first manager account from configuration
// when the admins table is empty.
func (s *AdminService) CreateDefaultAdmin(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return errors.New("admin bootstrap credentials are not configured")
	}

	hash, err := crypto.HashPassword(s.cfg.AdminPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	admin := &models.Admin{
		Name:        s.cfg.AdminName,
		Email:       strings.ToLower(s.cfg.AdminEmail),
		Password:    hash,
		AccessLevel: models.AccessLevelManager,
	}
	return s.db.WithContext(ctx).Create(admin).Error
}

func (s *AdminService) Create(ctx context.Context, in AdminInput, set *MediaSet) (*models.Admin, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	if in.Email == nil || !validation.ValidateEmail(*in.Email) {
		return nil, apperr.Validationf("a valid email is required")
	}
	if in.Password == nil || !validation.ValidatePassword(*in.Password) {
		return nil, apperr.Validationf("password must be at least 8 characters with upper case, lower case and a number")
	}

	email := strings.ToLower(*in.Email)
	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, apperr.Internal("failed to check admin email", err)
	}
	if existing > 0 {
		return nil, apperr.Validationf("an admin with this email already exists")
	}

	hash, err := crypto.HashPassword(*in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	admin := &models.Admin{
		Name:        *in.Name,
		Email:       email,
		Password:    hash,
		AccessLevel: models.AccessLevelContent,
	}
	if in.AccessLevel != nil {
		if *in.AccessLevel != models.AccessLevelManager && *in.AccessLevel != models.AccessLevelContent {
			return nil, apperr.Validationf("access level must be %d or %d", models.AccessLevelManager, models.AccessLevelContent)
		}
		admin.AccessLevel = *in.AccessLevel
	}
	if set != nil {
		admin.Image = set.Image
	}

	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, apperr.Internal("failed to create admin", err)
	}
	return admin, nil
}

func (s *AdminService) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("admin not found")
		}
		return nil, apperr.Internal("failed to load admin", err)
	}
	return &admin, nil
}

func (s *AdminService) List(ctx context.Context, page, limit int) ([]models.Admin, Pagination, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to count admins", err)
	}

	var admins []models.Admin
	if err := s.db.WithContext(ctx).Order("name ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&admins).Error; err != nil {
		return nil, Pagination{}, apperr.Internal("failed to list admins", err)
	}
	return admins, paginate(page, limit, total), nil
}

func (s *AdminService) Update(ctx context.Context, id uuid.UUID, in AdminInput, set *MediaSet) (*models.Admin, error) {
	admin, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		admin.Name = *in.Name
	}
	if in.Email != nil {
		if !validation.ValidateEmail(*in.Email) {
			return nil, apperr.Validationf("a valid email is required")
		}
		admin.Email = strings.ToLower(*in.Email)
	}
	if in.Password != nil {
		if !validation.ValidatePassword(*in.Password) {
			return nil, apperr.Validationf("password must be at least 8 characters with upper case, lower case and a number")
		}
		hash, err := crypto.HashPassword(*in.Password, s.cfg.BcryptCost)
		if err != nil {
			return nil, apperr.Internal("failed to hash password", err)
		}
		admin.Password = hash
	}
	if in.AccessLevel != nil {
		if *in.AccessLevel != models.AccessLevelManager && *in.AccessLevel != models.AccessLevelContent {
			return nil, apperr.Validationf("access level must be %d or %d", models.AccessLevelManager, models.AccessLevelContent)
		}
		admin.AccessLevel = *in.AccessLevel
	}

	var stale []models.Asset
	if set != nil && !set.Image.IsZero() {
		if !admin.Image.IsZero() {
			stale = append(stale, admin.Image)
		}
		admin.Image = set.Image
	}

	if err := s.db.WithContext(ctx).Save(admin).Error; err != nil {
		return nil, apperr.Internal("failed to update admin", err)
	}
	s.media.CleanupStale(ctx, stale)
	return admin, nil
}

// Delete refuses self-deletion so the last manager cannot lock everyone
// out mid-session.
func (s *AdminService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	if id == actorID {
		return apperr.Validationf("an admin cannot delete their own account")
	}
	admin, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(s.media.DeleteContext(ctx)).Delete(admin).Error; err != nil {
		return apperr.Internal("failed to delete admin", err)
	}
	return nil
}
