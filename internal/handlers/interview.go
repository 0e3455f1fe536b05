package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mockmate/interview-coach/internal/middleware"
	"mockmate/interview-coach/internal/models"
	"mockmate/interview-coach/internal/repositories"
	"mockmate/interview-coach/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
	interviewRepo    repositories.InterviewRepository
	storageService   services.StorageService
	maxAudioSize     int64
}

func NewInterviewHandler(
	interviewService services.InterviewService,
	interviewRepo repositories.InterviewRepository,
	storageService services.StorageService,
	maxAudioSize int64,
) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		interviewRepo:    interviewRepo,
		storageService:   storageService,
		maxAudioSize:     maxAudioSize,
	}
}

// HandleStart handles POST /interviews
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	professionID, err := uuid.Parse(req.ProfessionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profession_id format",
		})
	}

	userID := middleware.CurrentUserID(c)

	interview, err := h.interviewService.CreateInterview(c.Context(), userID, professionID, models.Grade(req.Grade))
	if err != nil {
		if errors.Is(err, services.ErrInvalidGrade) || errors.Is(err, services.ErrInvalidProfession) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create interview",
		})
	}

	questions, err := h.interviewService.GetQuestions(interview.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load interview questions",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"interview": interview,
		"questions": questions,
	})
}

// HandleQuestions handles GET /interviews/:id/questions
func (h *InterviewHandler) HandleQuestions(c *fiber.Ctx) error {
	interview, err := h.ownedInterview(c, c.Params("id"))
	if err != nil {
		return err
	}

	questions, err := h.interviewService.GetQuestions(interview.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load interview questions",
		})
	}

	return c.JSON(fiber.Map{"questions": questions})
}

// HandleSubmitAnswer handles POST /answers/:id/audio. The uploaded recording
// is saved, then the answer is driven through transcription and AI review
// synchronously; the response carries the resulting feedback.
func (h *InterviewHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	answerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid answer ID format",
		})
	}

	answer, err := h.interviewRepo.FindAnswerByID(answerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Answer not found",
		})
	}

	interview, err := h.interviewRepo.FindByID(answer.InterviewID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	}

	if interview.UserID != middleware.CurrentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You do not have permission to access this answer",
		})
	}

	file, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No audio file provided",
		})
	}

	if file.Size > h.maxAudioSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Audio file too large. Max size: %d bytes", h.maxAudioSize),
		})
	}

	// One submission per answer: re-submissions return the stored feedback.
	if answer.Reviewed() {
		return c.JSON(answerResponse(answer))
	}

	_, filePath, err := h.storageService.SaveFile(file, services.KindAudio)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to save audio file: %v", err),
		})
	}

	processed, err := h.interviewService.ProcessAnswer(c.Context(), answerID, filePath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process answer",
		})
	}

	return c.JSON(answerResponse(processed))
}

// HandleDetails handles GET /interviews/:id
func (h *InterviewHandler) HandleDetails(c *fiber.Ctx) error {
	interview, err := h.ownedInterview(c, c.Params("id"))
	if err != nil {
		return err
	}

	details, err := h.interviewService.GetDetails(interview.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load interview details",
		})
	}

	return c.JSON(details)
}

// HandleHistory handles GET /interviews
func (h *InterviewHandler) HandleHistory(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	interviews, err := h.interviewRepo.FindByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load interview history",
		})
	}

	summaries := make([]models.InterviewSummary, 0, len(interviews))
	for _, interview := range interviews {
		summaries = append(summaries, models.InterviewSummary{
			ID:            interview.ID.String(),
			Profession:    interview.Profession.Name,
			Grade:         string(interview.Grade),
			OverallRating: interview.OverallRating,
			CreatedAt:     interview.CreatedAt,
			CompletedAt:   interview.CompletedAt,
		})
	}

	return c.JSON(fiber.Map{"interviews": summaries})
}

func (h *InterviewHandler) ownedInterview(c *fiber.Ctx, idParam string) (*models.Interview, error) {
	interviewID, err := uuid.Parse(idParam)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid interview ID format")
	}

	interview, err := h.interviewRepo.FindByID(interviewID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Interview not found")
	}

	if interview.UserID != middleware.CurrentUserID(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "You do not have permission to access this interview")
	}

	return interview, nil
}

func answerResponse(answer *models.Answer) models.AnswerResponse {
	return models.AnswerResponse{
		ID:              answer.ID.String(),
		TranscribedText: answer.TranscribedText,
		Feedback:        answer.Feedback,
		Rating:          answer.Rating,
	}
}
