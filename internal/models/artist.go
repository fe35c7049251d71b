package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Artist carries an image and per-language audio guide tracks, plus
// references to the artworks attributed to them.
type Artist struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Biography   string     `gorm:"type:text" json:"biography"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`

	Artworks  IDList    `gorm:"type:jsonb" json:"artworks"`
	Image     Asset     `gorm:"type:jsonb" json:"image"`
	AudioGuia AssetList `gorm:"type:jsonb" json:"audioGuia"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artist) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Artist) CollectAssets() []Asset {
	var assets []Asset
	if !a.Image.IsZero() {
		assets = append(assets, a.Image)
	}
	assets = append(assets, a.AudioGuia...)
	return assets
}

func (a *Artist) BeforeDelete(tx *gorm.DB) error {
	return cascadeAssets(tx, a)
}
