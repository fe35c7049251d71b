package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin access levels: level 1 manages other admins and content,
// level 2 manages content only.
const (
	AccessLevelManager = 1
	AccessLevelContent = 2
)

type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	AccessLevel  int       `gorm:"not null" json:"access_level"`
	RefreshToken string    `gorm:"size:512" json:"-"`

	Image Asset `gorm:"type:jsonb" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Admin) CollectAssets() []Asset {
	if a.Image.IsZero() {
		return nil
	}
	return []Asset{a.Image}
}

func (a *Admin) BeforeDelete(tx *gorm.DB) error {
	return cascadeAssets(tx, a)
}
