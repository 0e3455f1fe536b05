package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

// ErrorKind classifies a failed generation call so callers can decide whether
// to retry without inspecting message text.
type ErrorKind int

const (
	KindPermanent ErrorKind = iota
	KindTransient
	KindBlocked
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindBlocked:
		return "blocked"
	default:
		return "permanent"
	}
}

type GenerateError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("gemini %s error: %v", e.Kind, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// GenerationOptions mirrors the provider's generation config surface used by
// this service.
type GenerationOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}

func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		Temperature:     0.7,
		MaxOutputTokens: 2048,
	}
}

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string, opts GenerationOptions) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, opts GenerationOptions, maxRetries int) (string, error)
	TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string

	// indirections for tests
	generateFn func(ctx context.Context, prompt string, opts GenerationOptions) (string, error)
	after      func(d time.Duration) <-chan time.Time
}

func NewGeminiService(apiKey, modelName string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	g := &geminiService{
		client:    client,
		modelName: modelName,
		after:     time.After,
	}
	g.generateFn = g.generateContent

	return g, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	return g.generateFn(ctx, prompt, opts)
}

// GenerateTextWithRetry implements GeminiService. Only transient failures
// (rate limits, server-side errors) are retried, with a linear backoff of
// (attempt+1) * 2 seconds between calls.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, opts GenerationOptions, maxRetries int) (string, error) {
	for attempt := 0; ; attempt++ {
		result, err := g.generateFn(ctx, prompt, opts)
		if err == nil {
			return result, nil
		}

		var genErr *GenerateError
		if !errors.As(err, &genErr) || genErr.Kind != KindTransient || attempt >= maxRetries {
			return "", err
		}

		wait := time.Duration(attempt+1) * 2 * time.Second
		log.Printf("⚠️ Attempt %d failed: %v. Retrying in %v...\n", attempt+1, err, wait)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-g.after(wait):
		}
	}
}

func (g *geminiService) generateContent(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &opts.Temperature,
		MaxOutputTokens: opts.MaxOutputTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", &GenerateError{Kind: classifyKind(err), Err: err}
	}

	if resp == nil {
		return "", &GenerateError{Kind: KindPermanent, Err: fmt.Errorf("no response generated (nil response)")}
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &GenerateError{
			Kind: KindBlocked,
			Err:  fmt.Errorf("content generation blocked (%s)", resp.PromptFeedback.BlockReason),
		}
	}

	text := resp.Text()
	if text == "" {
		return "", &GenerateError{Kind: KindPermanent, Err: fmt.Errorf("no text content in response")}
	}

	return text, nil
}

// TranscribeAudio implements GeminiService. It sends a transcription-only
// instruction together with the raw audio bytes in a single multimodal call.
func (g *geminiService) TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(transcriptionInstruction),
		genai.NewPartFromBytes(audio, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return "", &GenerateError{Kind: classifyKind(err), Err: err}
	}

	if resp == nil {
		return "", &GenerateError{Kind: KindPermanent, Err: fmt.Errorf("no response generated (nil response)")}
	}

	return strings.TrimSpace(resp.Text()), nil
}

const transcriptionInstruction = `Please transcribe the audio content accurately.
Return ONLY the transcribed text, without any additional commentary.`

// classifyKind decides whether an API error is worth retrying. The provider
// does not expose structured status codes on every path, so rate-limit and
// server-side failures are recognized by substring.
func classifyKind(err error) ErrorKind {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "500") {
		return KindTransient
	}
	return KindPermanent
}
