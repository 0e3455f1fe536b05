package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mockmate/interview-coach/internal/models"
)

var (
	ErrInterviewNotFound = errors.New("interview not found")
	ErrAnswerNotFound    = errors.New("answer not found")
)

// AnswerUpdate carries the fields ProcessAnswer writes back. Nil fields are
// left untouched.
type AnswerUpdate struct {
	AudioPath       *string
	TranscribedText *string
	Feedback        *string
	Rating          *float64
}

type InterviewRepository interface {
	CreateWithAnswers(interview *models.Interview, questions []models.Question) error
	FindByID(id uuid.UUID) (*models.Interview, error)
	FindByIDWithAnswers(id uuid.UUID) (*models.Interview, error)
	FindAnswerByID(id uuid.UUID) (*models.Answer, error)
	FindAnswersByInterview(interviewID uuid.UUID) ([]models.Answer, error)
	UpdateAnswer(id uuid.UUID, update *AnswerUpdate) error
	Complete(id uuid.UUID, overallRating float64, completedAt time.Time) error
	FindByUser(userID uuid.UUID) ([]models.Interview, error)
	FindRecent(userID, professionID uuid.UUID, grade models.Grade, limit int) ([]models.Interview, error)
	CountByUser(userID uuid.UUID, completedOnly bool) (int64, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

// CreateWithAnswers implements InterviewRepository. The interview and one
// placeholder answer per sampled question are committed as a single unit of
// work; any failure rolls everything back.
func (r *interviewRepository) CreateWithAnswers(interview *models.Interview, questions []models.Question) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(interview).Error; err != nil {
			return err
		}

		for i := range questions {
			answer := models.Answer{
				InterviewID: interview.ID,
				QuestionID:  questions[i].ID,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

// FindByID implements InterviewRepository.
func (r *interviewRepository) FindByID(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	if err := r.db.Preload("Profession").Where("id = ?", id).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

// FindByIDWithAnswers implements InterviewRepository.
func (r *interviewRepository) FindByIDWithAnswers(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Preload("Profession").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC")
		}).
		Preload("Answers.Question").
		Where("id = ?", id).
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

// FindAnswerByID implements InterviewRepository.
func (r *interviewRepository) FindAnswerByID(id uuid.UUID) (*models.Answer, error) {
	var answer models.Answer
	if err := r.db.Preload("Question").Where("id = ?", id).First(&answer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}
	return &answer, nil
}

// FindAnswersByInterview implements InterviewRepository.
func (r *interviewRepository) FindAnswersByInterview(interviewID uuid.UUID) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.
		Where("interview_id = ?", interviewID).
		Order("created_at ASC").
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find answers: %w", err)
	}
	return answers, nil
}

// UpdateAnswer implements InterviewRepository.
func (r *interviewRepository) UpdateAnswer(id uuid.UUID, update *AnswerUpdate) error {
	updates := map[string]interface{}{}
	if update.AudioPath != nil {
		updates["audio_path"] = *update.AudioPath
	}
	if update.TranscribedText != nil {
		updates["transcribed_text"] = *update.TranscribedText
	}
	if update.Feedback != nil {
		updates["feedback"] = *update.Feedback
	}
	if update.Rating != nil {
		updates["rating"] = *update.Rating
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&models.Answer{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update answer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAnswerNotFound
	}
	return nil
}

// Complete implements InterviewRepository. The completed_at guard makes the
// update a no-op when another submission already completed the interview.
func (r *interviewRepository) Complete(id uuid.UUID, overallRating float64, completedAt time.Time) error {
	result := r.db.Model(&models.Interview{}).
		Where("id = ? AND completed_at IS NULL", id).
		Updates(map[string]interface{}{
			"overall_rating": overallRating,
			"completed_at":   completedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to complete interview: %w", result.Error)
	}
	return nil
}

// FindByUser implements InterviewRepository.
func (r *interviewRepository) FindByUser(userID uuid.UUID) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Preload("Profession").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

// FindRecent implements InterviewRepository.
func (r *interviewRepository) FindRecent(userID, professionID uuid.UUID, grade models.Grade, limit int) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Where("user_id = ? AND profession_id = ? AND grade = ?", userID, professionID, grade).
		Order("created_at DESC").
		Limit(limit).
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent interviews: %w", err)
	}
	return interviews, nil
}

// CountByUser implements InterviewRepository.
func (r *interviewRepository) CountByUser(userID uuid.UUID, completedOnly bool) (int64, error) {
	query := r.db.Model(&models.Interview{}).Where("user_id = ?", userID)
	if completedOnly {
		query = query.Where("completed_at IS NOT NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count interviews: %w", err)
	}
	return count, nil
}
