package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mockmate/interview-coach/internal/middleware"
	"mockmate/interview-coach/internal/models"
	"mockmate/interview-coach/internal/repositories"
)

type CatalogHandler struct {
	catalogRepo   repositories.CatalogRepository
	interviewRepo repositories.InterviewRepository
}

func NewCatalogHandler(
	catalogRepo repositories.CatalogRepository,
	interviewRepo repositories.InterviewRepository,
) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo:   catalogRepo,
		interviewRepo: interviewRepo,
	}
}

// HandleIndex handles GET /catalog — every profession with per-grade
// question counts.
func (h *CatalogHandler) HandleIndex(c *fiber.Ctx) error {
	professions, err := h.catalogRepo.FindAllProfessions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load catalog",
		})
	}

	entries := make([]models.ProfessionCatalogEntry, 0, len(professions))
	for _, profession := range professions {
		counts := make(map[models.Grade]int, len(models.Grades))
		for _, grade := range models.Grades {
			count, err := h.catalogRepo.CountQuestions(profession.ID, grade)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to load catalog",
				})
			}
			counts[grade] = int(count)
		}
		entries = append(entries, models.ProfessionCatalogEntry{
			ID:             profession.ID.String(),
			Name:           profession.Name,
			QuestionCounts: counts,
		})
	}

	return c.JSON(fiber.Map{
		"professions": entries,
		"grades":      models.Grades,
	})
}

// HandleProfessionDetail handles GET /catalog/professions/:id/grades/:grade —
// the user's recent interviews for one profession/grade track.
func (h *CatalogHandler) HandleProfessionDetail(c *fiber.Ctx) error {
	professionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profession ID format",
		})
	}

	grade := models.Grade(c.Params("grade"))
	if !grade.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid grade selected",
		})
	}

	profession, err := h.catalogRepo.FindProfessionByID(professionID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profession not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profession",
		})
	}

	userID := middleware.CurrentUserID(c)

	recent, err := h.interviewRepo.FindRecent(userID, professionID, grade, 5)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load interviews",
		})
	}

	questionCount, err := h.catalogRepo.CountQuestions(professionID, grade)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profession",
		})
	}

	summaries := make([]models.InterviewSummary, 0, len(recent))
	for _, interview := range recent {
		summaries = append(summaries, models.InterviewSummary{
			ID:            interview.ID.String(),
			Profession:    profession.Name,
			Grade:         string(interview.Grade),
			OverallRating: interview.OverallRating,
			CreatedAt:     interview.CreatedAt,
			CompletedAt:   interview.CompletedAt,
		})
	}

	return c.JSON(fiber.Map{
		"profession":        profession,
		"grade":             grade,
		"question_count":    questionCount,
		"recent_interviews": summaries,
	})
}
