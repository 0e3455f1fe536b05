package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultProfilePicture = "default.jpg"

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName       string    `gorm:"type:text;not null" json:"full_name"`
	Email          string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"type:text;not null" json:"-"`
	ProfilePicture string    `gorm:"type:text;default:'default.jpg'" json:"profile_picture"`
	ActualCV       *string   `gorm:"type:text" json:"actual_cv,omitempty"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Interviews []Interview `gorm:"foreignKey:UserID" json:"-"`
	CVs        []CV        `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
