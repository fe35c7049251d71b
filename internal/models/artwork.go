package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Artwork is a museum piece with an image plus per-language audio
// description and audio guide tracks.
type Artwork struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Author      string    `gorm:"size:255" json:"author"`
	Support     string    `gorm:"size:255" json:"support"`
	Year        string    `gorm:"size:32" json:"year"`
	Dimension   string    `gorm:"size:64" json:"dimension"`
	Archived    bool      `gorm:"default:false" json:"archived"`

	Image     Asset     `gorm:"type:jsonb" json:"image"`
	AudioDesc AssetList `gorm:"type:jsonb" json:"audioDesc"`
	AudioGuia AssetList `gorm:"type:jsonb" json:"audioGuia"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// CollectAssets flattens the image and every audio entry into one list.
func (a *Artwork) CollectAssets() []Asset {
	var assets []Asset
	if !a.Image.IsZero() {
		assets = append(assets, a.Image)
	}
	assets = append(assets, a.AudioDesc...)
	assets = append(assets, a.AudioGuia...)
	return assets
}

func (a *Artwork) BeforeDelete(tx *gorm.DB) error {
	return cascadeAssets(tx, a)
}
