package services

import (
	"context"
	"errors"
)

// fakeGemini is a scriptable GeminiService for tests.
type fakeGemini struct {
	generateFunc   func(prompt string) (string, error)
	transcribeFunc func(audio []byte, mimeType string) (string, error)

	prompts         []string
	transcribeCalls int
	lastMimeType    string
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	return f.GenerateTextWithRetry(ctx, prompt, opts, 0)
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, opts GenerationOptions, maxRetries int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.generateFunc == nil {
		return "", errors.New("generateFunc not set")
	}
	return f.generateFunc(prompt)
}

func (f *fakeGemini) TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, error) {
	f.transcribeCalls++
	f.lastMimeType = mimeType
	if f.transcribeFunc == nil {
		return "", errors.New("transcribeFunc not set")
	}
	return f.transcribeFunc(audio, mimeType)
}

// fakeTranscriber is a scriptable TranscriptionService for orchestrator tests.
type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// fakeParser is a scriptable PDFParserService for CV tests.
type fakeParser struct {
	text string
	err  error
}

func (f *fakeParser) ExtractText(filePath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
