package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Grade string

const (
	GradeJunior Grade = "Junior"
	GradeMiddle Grade = "Middle"
	GradeSenior Grade = "Senior"
)

// Grades lists every valid grade in display order.
var Grades = []Grade{GradeJunior, GradeMiddle, GradeSenior}

func (g Grade) Valid() bool {
	switch g {
	case GradeJunior, GradeMiddle, GradeSenior:
		return true
	}
	return false
}

type Profession struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:text;uniqueIndex;not null" json:"name"`

	// Relations
	Questions []Question `gorm:"foreignKey:ProfessionID" json:"-"`
}

func (Profession) TableName() string {
	return "professions"
}

func (p *Profession) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Question struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"profession_id"`
	Grade        Grade     `gorm:"type:text;not null;index" json:"grade"`
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`

	// Relations
	Profession Profession `gorm:"foreignKey:ProfessionID" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
