package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exposition types: 1 is a long-running exhibition, 2 a temporary one.
const (
	ExpositionLongRunning = 1
	ExpositionTemporary   = 2
)

type Exposition struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Type        int        `gorm:"not null" json:"type"`
	Description string     `gorm:"type:text" json:"description"`
	Place       string     `gorm:"size:255" json:"place"`
	DateStarts  *time.Time `json:"date_starts,omitempty"`
	DateEnds    *time.Time `json:"date_ends,omitempty"`
	Archived    bool       `gorm:"default:false" json:"archived"`

	Artworks IDList `gorm:"type:jsonb" json:"artworks"`
	Image    Asset  `gorm:"type:jsonb" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Exposition) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Exposition) CollectAssets() []Asset {
	if e.Image.IsZero() {
		return nil
	}
	return []Asset{e.Image}
}

func (e *Exposition) BeforeDelete(tx *gorm.DB) error {
	return cascadeAssets(tx, e)
}
