package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mockmate/interview-coach/internal/middleware"
	"mockmate/interview-coach/internal/models"
	"mockmate/interview-coach/internal/repositories"
	"mockmate/interview-coach/internal/services"
)

type CVHandler struct {
	cvRepo         repositories.CVRepository
	cvService      services.CVService
	storageService services.StorageService
	maxUploadSize  int64
}

func NewCVHandler(
	cvRepo repositories.CVRepository,
	cvService services.CVService,
	storageService services.StorageService,
	maxUploadSize int64,
) *CVHandler {
	return &CVHandler{
		cvRepo:         cvRepo,
		cvService:      cvService,
		storageService: storageService,
		maxUploadSize:  maxUploadSize,
	}
}

// HandleUpload handles POST /cvs — saves the PDF, runs the AI review, and
// returns the reviewed record.
func (h *CVHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("cv_file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No CV file provided",
		})
	}

	if file.Size > h.maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxUploadSize),
		})
	}

	_, filePath, err := h.storageService.SaveFile(file, services.KindCV)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file format. Only PDF files are allowed.",
		})
	}

	userID := middleware.CurrentUserID(c)

	cv, err := h.cvService.ProcessUpload(c.Context(), userID, file.Filename, filePath)
	if err != nil {
		// Database failure after the file landed on disk: clean up.
		_ = h.storageService.DeleteFile(filePath)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process CV",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(cvResponse(cv))
}

// HandleList handles GET /cvs
func (h *CVHandler) HandleList(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	cvs, err := h.cvRepo.FindByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load CVs",
		})
	}

	responses := make([]models.CVResponse, 0, len(cvs))
	for i := range cvs {
		responses = append(responses, cvResponse(&cvs[i]))
	}

	return c.JSON(fiber.Map{"cvs": responses})
}

// HandleGet handles GET /cvs/:id
func (h *CVHandler) HandleGet(c *fiber.Ctx) error {
	cv, err := h.ownedCV(c, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(cvResponse(cv))
}

// HandleDownload handles GET /cvs/:id/download
func (h *CVHandler) HandleDownload(c *fiber.Ctx) error {
	cv, err := h.ownedCV(c, c.Params("id"))
	if err != nil {
		return err
	}

	return c.Download(cv.FilePath, cv.Filename)
}

// HandleDelete handles DELETE /cvs/:id — removes the stored file and the
// record.
func (h *CVHandler) HandleDelete(c *fiber.Ctx) error {
	cv, err := h.ownedCV(c, c.Params("id"))
	if err != nil {
		return err
	}

	if err := h.storageService.DeleteFile(cv.FilePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete CV file",
		})
	}

	if err := h.cvRepo.Delete(cv.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete CV",
		})
	}

	return c.JSON(fiber.Map{"message": "CV deleted successfully"})
}

func (h *CVHandler) ownedCV(c *fiber.Ctx, idParam string) (*models.CV, error) {
	cvID, err := uuid.Parse(idParam)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid CV ID format")
	}

	cv, err := h.cvRepo.FindByID(cvID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "CV not found")
	}

	if cv.UserID != middleware.CurrentUserID(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "You do not have permission to access this CV")
	}

	return cv, nil
}

func cvResponse(cv *models.CV) models.CVResponse {
	return models.CVResponse{
		ID:         cv.ID.String(),
		Filename:   cv.Filename,
		Review:     cv.Review,
		UploadedAt: cv.UploadedAt,
	}
}
