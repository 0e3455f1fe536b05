package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmate/interview-coach/internal/models"
	"mockmate/interview-coach/internal/repositories"
)

func TestReview_NoReadableTextShortCircuits(t *testing.T) {
	gemini := &fakeGemini{}
	svc := NewCVService(nil, &fakeParser{err: ErrNoTextContent}, gemini, 2)

	review, err := svc.Review(context.Background(), "/uploads/cvs/scan.pdf")

	require.NoError(t, err)
	assert.Equal(t, reviewNoReadableText, review)
	assert.Empty(t, gemini.prompts, "no review prompt should be sent for an unreadable CV")
}

func TestReview_UnreadablePDFStoresNote(t *testing.T) {
	gemini := &fakeGemini{}
	svc := NewCVService(nil, &fakeParser{err: errors.New("corrupt xref table")}, gemini, 2)

	review, err := svc.Review(context.Background(), "/uploads/cvs/broken.pdf")

	require.NoError(t, err)
	assert.Equal(t, reviewUnreadablePDF, review)
	assert.Empty(t, gemini.prompts, "no review prompt should be sent for a broken PDF")
}

func TestReview_PromptCarriesCVText(t *testing.T) {
	gemini := &fakeGemini{
		generateFunc: func(prompt string) (string, error) {
			return "Strong backend profile, thin on system design.", nil
		},
	}
	svc := NewCVService(nil, &fakeParser{text: "Jane Doe, Backend Engineer, 5 years Go"}, gemini, 2)

	review, err := svc.Review(context.Background(), "/uploads/cvs/jane.pdf")

	require.NoError(t, err)
	assert.Equal(t, "Strong backend profile, thin on system design.", review)
	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "Jane Doe, Backend Engineer, 5 years Go")
}

func TestReview_BlockedGenerationStoresNote(t *testing.T) {
	gemini := &fakeGemini{
		generateFunc: func(prompt string) (string, error) {
			return "", &GenerateError{Kind: KindBlocked, Err: errors.New("content generation blocked (SAFETY)")}
		},
	}
	svc := NewCVService(nil, &fakeParser{text: "some cv text"}, gemini, 2)

	review, err := svc.Review(context.Background(), "/uploads/cvs/odd.pdf")

	require.NoError(t, err)
	assert.Equal(t, reviewGenerationBlocked, review)
}

func TestReview_GenerationFailureStoresNote(t *testing.T) {
	gemini := &fakeGemini{
		generateFunc: func(prompt string) (string, error) {
			return "", &GenerateError{Kind: KindPermanent, Err: errors.New("API key not valid")}
		},
	}
	svc := NewCVService(nil, &fakeParser{text: "some cv text"}, gemini, 2)

	review, err := svc.Review(context.Background(), "/uploads/cvs/odd.pdf")

	require.NoError(t, err)
	assert.Equal(t, reviewGenerationFailed, review)
}

func TestProcessUpload_PersistsReview(t *testing.T) {
	db := openTestDB(t)

	user := &models.User{FullName: "Test User", Email: "cv@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	gemini := &fakeGemini{
		generateFunc: func(prompt string) (string, error) {
			return "Solid CV with clear impact statements.", nil
		},
	}
	cvRepo := repositories.NewCVRepository(db)
	svc := NewCVService(cvRepo, &fakeParser{text: "experience and education"}, gemini, 2)

	cv, err := svc.ProcessUpload(context.Background(), user.ID, "resume.pdf", "/uploads/cvs/resume.pdf")
	require.NoError(t, err)

	require.NotNil(t, cv.Review)
	assert.Equal(t, "Solid CV with clear impact statements.", *cv.Review)

	stored, err := cvRepo.FindByID(cv.ID)
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", stored.Filename)
	require.NotNil(t, stored.Review)
	assert.Equal(t, "Solid CV with clear impact statements.", *stored.Review)
}

func TestProcessUpload_CorruptPDFKeepsRowWithNote(t *testing.T) {
	db := openTestDB(t)

	user := &models.User{FullName: "Test User", Email: "cv@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	// Non-PDF bytes renamed to .pdf pass the extension check and fail in the
	// parser; the upload must still end with a reviewed row, never an error
	// that leaves the record stranded without a review.
	gemini := &fakeGemini{}
	cvRepo := repositories.NewCVRepository(db)
	svc := NewCVService(cvRepo, &fakeParser{err: errors.New("malformed PDF header")}, gemini, 2)

	cv, err := svc.ProcessUpload(context.Background(), user.ID, "notactually.pdf", "/uploads/cvs/notactually.pdf")
	require.NoError(t, err)

	stored, err := cvRepo.FindByID(cv.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Review)
	assert.Equal(t, reviewUnreadablePDF, *stored.Review)
	assert.Empty(t, gemini.prompts)
}
