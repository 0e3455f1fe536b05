package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"mockmate/interview-coach/internal/models"
	"mockmate/interview-coach/internal/repositories"
)

// Review text stored when the pipeline could not produce a real CV review.
const (
	reviewNoReadableText    = "No readable text found in the CV. The PDF might be scanned or contain images."
	reviewUnreadablePDF     = "This file could not be read as a PDF. It may be corrupted or not a real PDF document."
	reviewGenerationFailed  = "The AI reviewer was unavailable for this CV. Please try uploading it again later."
	reviewGenerationBlocked = "The review for this CV was blocked by the AI provider's content policy."
)

type CVService interface {
	ProcessUpload(ctx context.Context, userID uuid.UUID, originalName, filePath string) (*models.CV, error)
	Review(ctx context.Context, filePath string) (string, error)
}

type cvService struct {
	cvRepo        repositories.CVRepository
	pdfParser     PDFParserService
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewCVService(
	cvRepo repositories.CVRepository,
	pdfParser PDFParserService,
	gemini GeminiService,
	maxRetries int,
) CVService {
	return &cvService{
		cvRepo:        cvRepo,
		pdfParser:     pdfParser,
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// ProcessUpload implements CVService. The CV row is created first so the
// upload survives even when the review pipeline fails; the review text is
// attached afterwards.
func (s *cvService) ProcessUpload(ctx context.Context, userID uuid.UUID, originalName, filePath string) (*models.CV, error) {
	cv := &models.CV{
		UserID:   userID,
		Filename: originalName,
		FilePath: filePath,
	}

	if err := s.cvRepo.Create(cv); err != nil {
		return nil, err
	}

	review, err := s.Review(ctx, filePath)
	if err != nil {
		return nil, err
	}

	if err := s.cvRepo.UpdateReview(cv.ID, review); err != nil {
		return nil, err
	}

	cv.Review = &review
	return cv, nil
}

// Review implements CVService. Extraction failures short-circuit: nothing is
// sent to the AI provider, and the stored review explains what went wrong.
// The CV row is already committed by the time this runs, so a malformed file
// must never surface as an error that strands the row without a review.
func (s *cvService) Review(ctx context.Context, filePath string) (string, error) {
	cvText, err := s.pdfParser.ExtractText(filePath)
	if err != nil {
		if errors.Is(err, ErrNoTextContent) {
			log.Printf("⚠️ No text extracted from CV %s\n", filePath)
			return reviewNoReadableText, nil
		}
		log.Printf("⚠️ Failed to extract text from CV %s: %v\n", filePath, err)
		return reviewUnreadablePDF, nil
	}

	prompt := s.promptBuilder.BuildCVPrompt(cvText)

	review, err := s.gemini.GenerateTextWithRetry(ctx, prompt, DefaultGenerationOptions(), s.maxRetries)
	if err != nil {
		log.Printf("❌ CV review generation failed for %s: %v\n", filePath, err)
		var genErr *GenerateError
		if errors.As(err, &genErr) && genErr.Kind == KindBlocked {
			return reviewGenerationBlocked, nil
		}
		return reviewGenerationFailed, nil
	}

	return review, nil
}
