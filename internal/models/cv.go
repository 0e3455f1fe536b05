package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CV struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename   string    `gorm:"type:text;not null" json:"filename"`
	FilePath   string    `gorm:"type:text;not null" json:"file_path"`
	Review     *string   `gorm:"type:text" json:"review,omitempty"`
	UploadedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"uploaded_at"`
}

func (CV) TableName() string {
	return "cvs"
}

func (c *CV) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
