package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interview is one mock interview session. CompletedAt is set exactly once,
// when every owned answer has feedback.
type Interview struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ProfessionID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"profession_id"`
	Grade         Grade      `gorm:"type:text;not null" json:"grade"`
	OverallRating *float64   `gorm:"type:decimal(2,1)" json:"overall_rating,omitempty"`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`

	// Relations
	Profession Profession `gorm:"foreignKey:ProfessionID" json:"-"`
	Answers    []Answer   `gorm:"foreignKey:InterviewID" json:"-"`
}

func (Interview) TableName() string {
	return "interviews"
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Interview) Completed() bool {
	return i.CompletedAt != nil
}

// Answer belongs to exactly one interview and one question. It moves from
// empty to transcribed to reviewed, one submission per answer. Rating is set
// only when a score was parsed out of the feedback and fell inside [1.0, 5.0].
type Answer struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID     uuid.UUID `gorm:"type:uuid;not null;index" json:"interview_id"`
	QuestionID      uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`
	AudioPath       *string   `gorm:"type:text" json:"audio_path,omitempty"`
	TranscribedText *string   `gorm:"type:text" json:"transcribed_text,omitempty"`
	Feedback        *string   `gorm:"type:text" json:"feedback,omitempty"`
	Rating          *float64  `gorm:"type:decimal(2,1)" json:"rating,omitempty"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Question Question `gorm:"foreignKey:QuestionID" json:"-"`
}

func (Answer) TableName() string {
	return "answers"
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Answer) Reviewed() bool {
	return a.Feedback != nil
}
