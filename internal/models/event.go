package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a dated museum happening with an optional image.
type Event struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Date        *time.Time `json:"date,omitempty"`
	Archived    bool       `gorm:"default:false" json:"archived"`

	Image Asset `gorm:"type:jsonb" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Event) CollectAssets() []Asset {
	if e.Image.IsZero() {
		return nil
	}
	return []Asset{e.Image}
}

func (e *Event) BeforeDelete(tx *gorm.DB) error {
	return cascadeAssets(tx, e)
}
