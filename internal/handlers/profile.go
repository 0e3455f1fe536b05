package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"mockmate/interview-coach/internal/middleware"
	"mockmate/interview-coach/internal/models"
	"mockmate/interview-coach/internal/repositories"
	"mockmate/interview-coach/internal/services"
)

type ProfileHandler struct {
	userRepo       repositories.UserRepository
	interviewRepo  repositories.InterviewRepository
	cvRepo         repositories.CVRepository
	storageService services.StorageService
}

func NewProfileHandler(
	userRepo repositories.UserRepository,
	interviewRepo repositories.InterviewRepository,
	cvRepo repositories.CVRepository,
	storageService services.StorageService,
) *ProfileHandler {
	return &ProfileHandler{
		userRepo:       userRepo,
		interviewRepo:  interviewRepo,
		cvRepo:         cvRepo,
		storageService: storageService,
	}
}

// HandleGet handles GET /profile — the user together with activity counts.
func (h *ProfileHandler) HandleGet(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	interviewCount, err := h.interviewRepo.CountByUser(userID, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}

	completedCount, err := h.interviewRepo.CountByUser(userID, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}

	cvCount, err := h.cvRepo.CountByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}

	return c.JSON(models.ProfileResponse{
		User:                    userResponse(user),
		InterviewCount:          interviewCount,
		CompletedInterviewCount: completedCount,
		CVCount:                 cvCount,
	})
}

// HandleUpdate handles PUT /profile — full name plus optional profile
// picture and primary-CV uploads via multipart form.
func (h *ProfileHandler) HandleUpdate(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if fullName := strings.TrimSpace(c.FormValue("full_name")); fullName != "" {
		user.FullName = fullName
	}

	if file, err := c.FormFile("profile_picture"); err == nil {
		filename, _, err := h.storageService.SaveFile(file, services.KindProfilePicture)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid image format. Only PNG, JPG, JPEG, and GIF files are allowed.",
			})
		}

		if user.ProfilePicture != models.DefaultProfilePicture {
			oldPath := h.storageService.GetFilePath(services.KindProfilePicture, user.ProfilePicture)
			_ = h.storageService.DeleteFile(oldPath)
		}

		user.ProfilePicture = filename
	}

	if file, err := c.FormFile("actual_cv"); err == nil {
		filename, _, err := h.storageService.SaveFile(file, services.KindCV)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid CV format. Only PDF files are allowed.",
			})
		}
		user.ActualCV = &filename
	}

	if err := h.userRepo.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(userResponse(user))
}
