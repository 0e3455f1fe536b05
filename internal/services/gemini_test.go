package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"rate limit message", errors.New("rate limit exceeded for model"), KindTransient},
		{"429 status", errors.New("googleapi: Error 429: Resource exhausted"), KindTransient},
		{"500 status", errors.New("googleapi: Error 500: Internal error"), KindTransient},
		{"invalid credentials", errors.New("API key not valid"), KindPermanent},
		{"bad request", errors.New("googleapi: Error 400: Invalid argument"), KindPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyKind(tt.err))
		})
	}
}

// retryHarness builds a geminiService whose API call and backoff timer are
// scripted; each recorded wait elapses immediately.
func retryHarness(results []func() (string, error)) (*geminiService, *[]time.Duration, *int) {
	var sleeps []time.Duration
	calls := 0

	g := &geminiService{
		after: func(d time.Duration) <-chan time.Time {
			sleeps = append(sleeps, d)
			elapsed := make(chan time.Time)
			close(elapsed)
			return elapsed
		},
	}
	g.generateFn = func(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
		result := results[calls]
		calls++
		return result()
	}

	return g, &sleeps, &calls
}

func transientErr() (string, error) {
	return "", &GenerateError{Kind: KindTransient, Err: errors.New("googleapi: Error 429")}
}

func TestGenerateTextWithRetry_TransientThenSuccess(t *testing.T) {
	g, sleeps, calls := retryHarness([]func() (string, error){
		transientErr,
		func() (string, error) { return "recovered feedback", nil },
	})

	result, err := g.GenerateTextWithRetry(context.Background(), "prompt", DefaultGenerationOptions(), 2)

	require.NoError(t, err)
	assert.Equal(t, "recovered feedback", result)
	assert.Equal(t, 2, *calls)
	assert.Equal(t, []time.Duration{2 * time.Second}, *sleeps)
}

func TestGenerateTextWithRetry_PermanentFailsFast(t *testing.T) {
	g, sleeps, calls := retryHarness([]func() (string, error){
		func() (string, error) {
			return "", &GenerateError{Kind: KindPermanent, Err: errors.New("API key not valid")}
		},
	})

	_, err := g.GenerateTextWithRetry(context.Background(), "prompt", DefaultGenerationOptions(), 2)

	require.Error(t, err)
	assert.Equal(t, 1, *calls)
	assert.Empty(t, *sleeps)

	var genErr *GenerateError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindPermanent, genErr.Kind)
}

func TestGenerateTextWithRetry_BlockedFailsFast(t *testing.T) {
	g, sleeps, calls := retryHarness([]func() (string, error){
		func() (string, error) {
			return "", &GenerateError{Kind: KindBlocked, Err: errors.New("content generation blocked (SAFETY)")}
		},
	})

	_, err := g.GenerateTextWithRetry(context.Background(), "prompt", DefaultGenerationOptions(), 2)

	require.Error(t, err)
	assert.Equal(t, 1, *calls)
	assert.Empty(t, *sleeps)
}

func TestGenerateTextWithRetry_ExhaustsRetries(t *testing.T) {
	g, sleeps, calls := retryHarness([]func() (string, error){
		transientErr, transientErr, transientErr,
	})

	_, err := g.GenerateTextWithRetry(context.Background(), "prompt", DefaultGenerationOptions(), 2)

	require.Error(t, err)
	// Initial attempt plus two retries, with linear backoff between them.
	assert.Equal(t, 3, *calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *sleeps)
}

func TestGenerateTextWithRetry_CancelledDuringBackoff(t *testing.T) {
	calls := 0
	g := &geminiService{
		// A timer that never fires: the only way out of the backoff wait is
		// the context.
		after: func(d time.Duration) <-chan time.Time {
			return make(chan time.Time)
		},
	}
	g.generateFn = func(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
		calls++
		return transientErr()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateTextWithRetry(ctx, "prompt", DefaultGenerationOptions(), 2)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "a cancelled request must not keep retrying")
}
