package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/yusuftas/PRGAVI/internal/captions"
	"github.com/yusuftas/PRGAVI/internal/transcribe"
)

// retryBackoff is the first retry delay; it doubles on every attempt.
var retryBackoff = time.Second

// retrying waits on the shared rate limiter before every attempt and retries
// failed transcriptions with exponential backoff.
type retrying struct {
	next       transcribe.Transcriber
	limiter    *rate.Limiter
	maxRetries int
}

func (r retrying) Transcribe(ctx context.Context, audioPath string) ([]captions.Word, error) {
	attempts := r.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		words, err := r.next.Transcribe(ctx, audioPath)
		if err == nil {
			return words, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt < attempts-1 {
			backoff := retryBackoff << uint(attempt) // 1s, 2s, 4s...
			slog.Warn("transcription failed, retrying",
				"file", filepath.Base(audioPath),
				"attempt", attempt+1,
				"backoff", backoff,
				"err", err)

			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return nil, fmt.Errorf("transcription failed after %d attempts: %w", attempts, lastErr)
}
