package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timeline groups events into a curated sequence. Timelines own no
// media assets.
type Timeline struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	Events IDList `gorm:"type:jsonb" json:"events"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Timeline) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
