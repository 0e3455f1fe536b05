package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAudioFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestTranscribe_MissingFile(t *testing.T) {
	gemini := &fakeGemini{}
	svc := NewTranscriptionService(gemini)

	_, err := svc.Transcribe(context.Background(), "/nonexistent/answer.webm")

	require.ErrorIs(t, err, ErrAudioNotFound)
	assert.Zero(t, gemini.transcribeCalls, "no API call should be made for a missing file")
}

func TestTranscribe_EmptyFile(t *testing.T) {
	gemini := &fakeGemini{}
	svc := NewTranscriptionService(gemini)
	path := writeAudioFile(t, "empty.webm", nil)

	_, err := svc.Transcribe(context.Background(), path)

	require.ErrorIs(t, err, ErrAudioEmpty)
	assert.Zero(t, gemini.transcribeCalls)
}

func TestTranscribe_Success(t *testing.T) {
	gemini := &fakeGemini{
		transcribeFunc: func(audio []byte, mimeType string) (string, error) {
			return "  I would use a load balancer here.  ", nil
		},
	}
	svc := NewTranscriptionService(gemini)
	path := writeAudioFile(t, "answer.webm", []byte("fake-audio-bytes"))

	text, err := svc.Transcribe(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "I would use a load balancer here.", text)
	assert.Equal(t, 1, gemini.transcribeCalls)
	assert.Equal(t, "audio/webm", gemini.lastMimeType)
}

func TestTranscribe_ShortTranscriptFallsBack(t *testing.T) {
	gemini := &fakeGemini{
		transcribeFunc: func(audio []byte, mimeType string) (string, error) {
			return "hm", nil
		},
	}
	svc := NewTranscriptionService(gemini)
	path := writeAudioFile(t, "mumble.mp3", []byte("fake-audio-bytes"))

	text, err := svc.Transcribe(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, TranscriptionFallback, text)
}

func TestTranscribe_APIFailurePropagates(t *testing.T) {
	gemini := &fakeGemini{
		transcribeFunc: func(audio []byte, mimeType string) (string, error) {
			return "", &GenerateError{Kind: KindTransient, Err: assert.AnError}
		},
	}
	svc := NewTranscriptionService(gemini)
	path := writeAudioFile(t, "answer.wav", []byte("fake-audio-bytes"))

	_, err := svc.Transcribe(context.Background(), path)

	require.Error(t, err)
	var genErr *GenerateError
	assert.ErrorAs(t, err, &genErr)
}

func TestMimeTypeForAudio(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.webm", "audio/webm"},
		{"a.m4a", "audio/m4a"},
		{"a.mp3", "audio/mp3"},
		{"a.wav", "audio/wav"},
		{"a.ogg", "audio/ogg"},
		{"a.flac", "audio/flac"},
		{"a.WAV", "audio/wav"},
		{"a.aiff", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, mimeTypeForAudio(tt.path))
		})
	}
}
