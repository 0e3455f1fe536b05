package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	ErrAudioNotFound = errors.New("audio file not found")
	ErrAudioEmpty    = errors.New("audio file is empty")
)

// TranscriptionFallback is returned when the model heard essentially nothing.
// It is a successful transcription from the caller's point of view.
const TranscriptionFallback = "I couldn't properly hear the audio. Please speak clearly and try again."

type TranscriptionService interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

type transcriptionService struct {
	gemini GeminiService
}

func NewTranscriptionService(gemini GeminiService) TranscriptionService {
	return &transcriptionService{gemini: gemini}
}

// Transcribe implements TranscriptionService. The file is validated before
// any external call is made; validation and API failures come back as typed
// errors for the caller to decide on.
func (t *transcriptionService) Transcribe(ctx context.Context, audioPath string) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAudioNotFound, audioPath)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("%w: %s", ErrAudioEmpty, audioPath)
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}

	mimeType := mimeTypeForAudio(audioPath)
	log.Printf("🎙️ Transcribing %s (%s, %d bytes)\n", filepath.Base(audioPath), mimeType, len(audio))

	transcription, err := t.gemini.TranscribeAudio(ctx, audio, mimeType)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	transcription = strings.TrimSpace(transcription)
	if utf8.RuneCountInString(transcription) < 5 {
		log.Println("⚠️ Transcription too short, using fallback text")
		return TranscriptionFallback, nil
	}

	return transcription, nil
}

// mimeTypeForAudio infers the MIME type from the file extension. Unknown
// extensions fall back to application/octet-stream.
func mimeTypeForAudio(audioPath string) string {
	switch strings.ToLower(filepath.Ext(audioPath)) {
	case ".webm":
		return "audio/webm"
	case ".m4a":
		return "audio/m4a"
	case ".mp3":
		return "audio/mp3"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	default:
		return "application/octet-stream"
	}
}
