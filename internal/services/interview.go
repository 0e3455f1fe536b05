package services

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"mockmate/interview-coach/internal/models"
	"mockmate/interview-coach/internal/repositories"
)

var (
	ErrInvalidProfession = errors.New("invalid profession selected")
	ErrInvalidGrade      = errors.New("invalid grade selected")
)

// QuestionsPerInterview is how many questions a full session gets. A smaller
// question bank yields a shorter session rather than an error.
const QuestionsPerInterview = 5

// defaultOverallRating is stored when an interview completes without a single
// parseable per-answer rating.
const defaultOverallRating = 3.0

// Feedback notes stored when the pipeline could not produce a real review.
// They count as feedback for the completion check, so one bad recording never
// wedges an interview open.
const (
	feedbackTranscriptionFailed = "We couldn't process your audio recording for this answer, so no review was generated. You can still see the question and try it in a future interview."
	feedbackGenerationBlocked   = "The review for this answer was blocked by the AI provider's content policy, so no feedback is available."
	feedbackGenerationFailed    = "The AI reviewer was unavailable for this answer, so no feedback could be generated. Please try another interview later."
)

type InterviewService interface {
	CreateInterview(ctx context.Context, userID, professionID uuid.UUID, grade models.Grade) (*models.Interview, error)
	GetQuestions(interviewID uuid.UUID) ([]models.InterviewQuestion, error)
	ProcessAnswer(ctx context.Context, answerID uuid.UUID, audioPath string) (*models.Answer, error)
	GetDetails(interviewID uuid.UUID) (*models.InterviewDetails, error)
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	catalogRepo   repositories.CatalogRepository
	transcriber   TranscriptionService
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	catalogRepo repositories.CatalogRepository,
	transcriber TranscriptionService,
	gemini GeminiService,
	maxRetries int,
) InterviewService {
	return &interviewService{
		interviewRepo: interviewRepo,
		catalogRepo:   catalogRepo,
		transcriber:   transcriber,
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// CreateInterview implements InterviewService. Profession and grade are
// validated before anything is allocated; the interview and its placeholder
// answers are persisted in one transaction.
func (s *interviewService) CreateInterview(ctx context.Context, userID, professionID uuid.UUID, grade models.Grade) (*models.Interview, error) {
	if !grade.Valid() {
		return nil, ErrInvalidGrade
	}

	profession, err := s.catalogRepo.FindProfessionByID(professionID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfessionNotFound) {
			return nil, ErrInvalidProfession
		}
		return nil, err
	}

	questions, err := s.catalogRepo.SampleQuestions(professionID, grade, QuestionsPerInterview)
	if err != nil {
		return nil, err
	}

	interview := &models.Interview{
		UserID:       userID,
		ProfessionID: professionID,
		Grade:        grade,
	}

	if err := s.interviewRepo.CreateWithAnswers(interview, questions); err != nil {
		return nil, err
	}

	log.Printf("✅ Created interview %s for user %s (%s, %s, %d questions)\n",
		interview.ID, userID, profession.Name, grade, len(questions))

	return interview, nil
}

// GetQuestions implements InterviewService.
func (s *interviewService) GetQuestions(interviewID uuid.UUID) ([]models.InterviewQuestion, error) {
	interview, err := s.interviewRepo.FindByIDWithAnswers(interviewID)
	if err != nil {
		return nil, err
	}

	questions := make([]models.InterviewQuestion, 0, len(interview.Answers))
	for _, answer := range interview.Answers {
		status := "pending"
		if answer.Reviewed() {
			status = "completed"
		}
		questions = append(questions, models.InterviewQuestion{
			QuestionID: answer.QuestionID.String(),
			Text:       answer.Question.QuestionText,
			AnswerID:   answer.ID.String(),
			Status:     status,
		})
	}

	return questions, nil
}

// ProcessAnswer implements InterviewService. It drives a single submission
// through transcription and AI review, persists the outcome, and runs the
// completion check. When transcription fails the error text is NOT fed into
// the review prompt; a fixed feedback note is stored instead and the answer
// stays unrated.
func (s *interviewService) ProcessAnswer(ctx context.Context, answerID uuid.UUID, audioPath string) (*models.Answer, error) {
	answer, err := s.interviewRepo.FindAnswerByID(answerID)
	if err != nil {
		return nil, err
	}

	interview, err := s.interviewRepo.FindByID(answer.InterviewID)
	if err != nil {
		return nil, err
	}

	update := &repositories.AnswerUpdate{AudioPath: &audioPath}

	transcript, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		log.Printf("⚠️ Transcription failed for answer %s: %v\n", answerID, err)
		note := feedbackTranscriptionFailed
		update.Feedback = &note
	} else {
		update.TranscribedText = &transcript

		prompt := s.promptBuilder.BuildInterviewPrompt(
			answer.Question.QuestionText,
			transcript,
			interview.Profession.Name,
			string(interview.Grade),
		)

		feedback, genErr := s.gemini.GenerateTextWithRetry(ctx, prompt, DefaultGenerationOptions(), s.maxRetries)
		if genErr != nil {
			log.Printf("❌ Feedback generation failed for answer %s: %v\n", answerID, genErr)
			note := generationFailureNote(genErr)
			update.Feedback = &note
		} else {
			update.Feedback = &feedback
			update.Rating = ParseTechnicalScore(feedback)
		}
	}

	if err := s.interviewRepo.UpdateAnswer(answerID, update); err != nil {
		return nil, err
	}

	if err := s.checkCompletion(interview.ID); err != nil {
		return nil, err
	}

	return s.interviewRepo.FindAnswerByID(answerID)
}

// checkCompletion recomputes completion over all answers. It is idempotent:
// the repository guard on completed_at makes the completing update a no-op
// when the interview is already closed.
func (s *interviewService) checkCompletion(interviewID uuid.UUID) error {
	answers, err := s.interviewRepo.FindAnswersByInterview(interviewID)
	if err != nil {
		return err
	}

	if len(answers) == 0 {
		return nil
	}

	var ratings []float64
	for _, answer := range answers {
		if !answer.Reviewed() {
			return nil
		}
		if answer.Rating != nil {
			ratings = append(ratings, *answer.Rating)
		}
	}

	overall := defaultOverallRating
	if len(ratings) > 0 {
		var sum float64
		for _, rating := range ratings {
			sum += rating
		}
		overall = math.Round(sum/float64(len(ratings))*10) / 10
	} else {
		log.Printf("⚠️ No answer ratings found for interview %s, using default rating\n", interviewID)
	}

	if err := s.interviewRepo.Complete(interviewID, overall, time.Now().UTC()); err != nil {
		return err
	}

	log.Printf("✅ Interview %s completed with rating %.1f\n", interviewID, overall)
	return nil
}

// GetDetails implements InterviewService.
func (s *interviewService) GetDetails(interviewID uuid.UUID) (*models.InterviewDetails, error) {
	interview, err := s.interviewRepo.FindByIDWithAnswers(interviewID)
	if err != nil {
		return nil, err
	}

	details := &models.InterviewDetails{
		ID:            interview.ID.String(),
		Profession:    interview.Profession.Name,
		Grade:         string(interview.Grade),
		OverallRating: interview.OverallRating,
		CreatedAt:     interview.CreatedAt,
		CompletedAt:   interview.CompletedAt,
		Answers:       make([]models.AnswerDetail, 0, len(interview.Answers)),
	}

	for _, answer := range interview.Answers {
		details.Answers = append(details.Answers, models.AnswerDetail{
			QuestionID:      answer.QuestionID.String(),
			QuestionText:    answer.Question.QuestionText,
			TranscribedText: answer.TranscribedText,
			Feedback:        answer.Feedback,
			Rating:          answer.Rating,
		})
	}

	return details, nil
}

func generationFailureNote(err error) string {
	var genErr *GenerateError
	if errors.As(err, &genErr) && genErr.Kind == KindBlocked {
		return feedbackGenerationBlocked
	}
	return feedbackGenerationFailed
}
