package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mockmate/interview-coach/internal/models"
)

var ErrProfessionNotFound = errors.New("profession not found")

type CatalogRepository interface {
	CreateProfession(profession *models.Profession) error
	CreateQuestions(questions []models.Question) error
	FindProfessionByID(id uuid.UUID) (*models.Profession, error)
	FindAllProfessions() ([]models.Profession, error)
	CountQuestions(professionID uuid.UUID, grade models.Grade) (int64, error)
	SampleQuestions(professionID uuid.UUID, grade models.Grade, limit int) ([]models.Question, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// CreateProfession implements CatalogRepository.
func (r *catalogRepository) CreateProfession(profession *models.Profession) error {
	if err := r.db.Create(profession).Error; err != nil {
		return fmt.Errorf("failed to create profession: %w", err)
	}
	return nil
}

// CreateQuestions implements CatalogRepository.
func (r *catalogRepository) CreateQuestions(questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	if err := r.db.Create(&questions).Error; err != nil {
		return fmt.Errorf("failed to create questions: %w", err)
	}
	return nil
}

// FindProfessionByID implements CatalogRepository.
func (r *catalogRepository) FindProfessionByID(id uuid.UUID) (*models.Profession, error) {
	var profession models.Profession
	if err := r.db.Where("id = ?", id).First(&profession).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessionNotFound
		}
		return nil, fmt.Errorf("failed to find profession: %w", err)
	}
	return &profession, nil
}

// FindAllProfessions implements CatalogRepository.
func (r *catalogRepository) FindAllProfessions() ([]models.Profession, error) {
	var professions []models.Profession
	if err := r.db.Order("name ASC").Find(&professions).Error; err != nil {
		return nil, fmt.Errorf("failed to list professions: %w", err)
	}
	return professions, nil
}

// CountQuestions implements CatalogRepository.
func (r *catalogRepository) CountQuestions(professionID uuid.UUID, grade models.Grade) (int64, error) {
	var count int64
	err := r.db.Model(&models.Question{}).
		Where("profession_id = ? AND grade = ?", professionID, grade).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// SampleQuestions implements CatalogRepository. Selection is random without
// replacement, scoped to one profession and grade; fewer rows come back when
// the bank is smaller than the limit.
func (r *catalogRepository) SampleQuestions(professionID uuid.UUID, grade models.Grade, limit int) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.
		Where("profession_id = ? AND grade = ?", professionID, grade).
		Order("random()").
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}
	return questions, nil
}
