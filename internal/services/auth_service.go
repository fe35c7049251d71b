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
	"github.com/mauc/audioguide-backend/pkg/jwt"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Login verifies credentials and issues an access/refresh token pair.
// The refresh token is persisted on the admin row so a stolen one dies
// with the next rotation or logout.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Admin, *TokenPair, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).First(&admin, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.Unauthorizedf("invalid email or password")
		}
		return nil, nil, apperr.Internal("failed to load admin", err)
	}
	if !crypto.CheckPassword(password, admin.Password) {
		return nil, nil, apperr.Unauthorizedf("invalid email or password")
	}

	pair, err := s.issueTokens(ctx, &admin)
	if err != nil {
		return nil, nil, err
	}
	return &admin, pair, nil
}

// Refresh rotates the token pair. The presented token must be a refresh
// token and must match the one stored for the admin.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := jwt.ValidateToken(refreshToken, s.cfg.JWTSecret)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, apperr.Unauthorizedf("invalid refresh token")
	}

	adminID, err := uuid.Parse(claims.AdminID)
	if err != nil {
		return nil, apperr.Unauthorizedf("invalid refresh token")
	}

	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, "id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorizedf("invalid refresh token")
		}
		return nil, apperr.Internal("failed to load admin", err)
	}
	if admin.RefreshToken == "" || admin.RefreshToken != refreshToken {
		return nil, apperr.Unauthorizedf("refresh token has been revoked")
	}

	return s.issueTokens(ctx, &admin)
}

// Logout revokes the stored refresh token. Outstanding access tokens
// expire on their own short TTL.
func (s *AuthService) Logout(ctx context.Context, adminID uuid.UUID) error {
	err := s.db.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ?", adminID).
		Update("refresh_token", "").Error
	if err != nil {
		return apperr.Internal("failed to revoke refresh token", err)
	}
	return nil
}

// ValidateAccessToken checks an access token and returns its claims.
func (s *AuthService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil || claims.TokenType != jwt.AccessToken {
		return nil, apperr.Unauthorizedf("invalid or expired access token")
	}
	return claims, nil
}

func (s *AuthService) issueTokens(ctx context.Context, admin *models.Admin) (*TokenPair, error) {
	access, err := jwt.GenerateToken(admin.ID.String(), admin.AccessLevel, jwt.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return nil, apperr.Internal("failed to sign access token", err)
	}
	refresh, err := jwt.GenerateToken(admin.ID.String(), admin.AccessLevel, jwt.RefreshToken, s.cfg.JWTSecret, s.cfg.JWTRefreshTokenDuration)
	if err != nil {
		return nil, apperr.Internal("failed to sign refresh token", err)
	}

	err = s.db.WithContext(ctx).Model(&models.Admin{}).
		Where("id = ?", admin.ID).
		Update("refresh_token", refresh).Error
	if err != nil {
		return nil, apperr.Internal("failed to persist refresh token", err)
	}
	admin.RefreshToken = refresh

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
