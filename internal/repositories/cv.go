package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mockmate/interview-coach/internal/models"
)

var ErrCVNotFound = errors.New("cv not found")

type CVRepository interface {
	Create(cv *models.CV) error
	FindByID(id uuid.UUID) (*models.CV, error)
	FindByUser(userID uuid.UUID) ([]models.CV, error)
	UpdateReview(id uuid.UUID, review string) error
	Delete(id uuid.UUID) error
	CountByUser(userID uuid.UUID) (int64, error)
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

// Create implements CVRepository.
func (r *cvRepository) Create(cv *models.CV) error {
	if err := r.db.Create(cv).Error; err != nil {
		return fmt.Errorf("failed to create cv: %w", err)
	}
	return nil
}

// FindByID implements CVRepository.
func (r *cvRepository) FindByID(id uuid.UUID) (*models.CV, error) {
	var cv models.CV
	if err := r.db.Where("id = ?", id).First(&cv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCVNotFound
		}
		return nil, fmt.Errorf("failed to find cv: %w", err)
	}
	return &cv, nil
}

// FindByUser implements CVRepository.
func (r *cvRepository) FindByUser(userID uuid.UUID) ([]models.CV, error) {
	var cvs []models.CV
	err := r.db.
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&cvs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cvs: %w", err)
	}
	return cvs, nil
}

// UpdateReview implements CVRepository.
func (r *cvRepository) UpdateReview(id uuid.UUID, review string) error {
	result := r.db.Model(&models.CV{}).
		Where("id = ?", id).
		Update("review", review)
	if result.Error != nil {
		return fmt.Errorf("failed to update cv review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCVNotFound
	}
	return nil
}

// Delete implements CVRepository.
func (r *cvRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.CV{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cv: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCVNotFound
	}
	return nil
}

// CountByUser implements CVRepository.
func (r *cvRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.CV{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cvs: %w", err)
	}
	return count, nil
}
