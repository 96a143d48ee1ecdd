// Package transcribe produces word-level timestamps for narration audio.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

// ErrNoTranscriber is returned when no engine is configured or every engine in
// a chain declined the request.
var ErrNoTranscriber = errors.New("no transcriber available")

// Transcriber returns the timed words spoken in an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]captions.Word, error)
}

// Func adapts a function to the Transcriber interface.
type Func func(ctx context.Context, audioPath string) ([]captions.Word, error)

// Transcribe implements Transcriber.
func (f Func) Transcribe(ctx context.Context, audioPath string) ([]captions.Word, error) {
	return f(ctx, audioPath)
}

// Chain tries each transcriber in order and returns the first non-empty
// result.
type Chain []Transcriber

// Transcribe implements Transcriber.
func (c Chain) Transcribe(ctx context.Context, audioPath string) ([]captions.Word, error) {
	var errs []error
	for _, t := range c {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		words, err := t.Transcribe(ctx, audioPath)
		if err != nil {
			slog.Warn("transcriber failed, trying next", "file", filepath.Base(audioPath), "err", err)
			errs = append(errs, err)
			continue
		}
		if len(words) > 0 {
			return words, nil
		}
	}
	if len(errs) == 0 {
		return nil, ErrNoTranscriber
	}
	return nil, fmt.Errorf("%w: %w", ErrNoTranscriber, errors.Join(errs...))
}

// Resolve transcribes audioPath and converts any failure into an absent
// transcription, so callers fall back to uniform word timing. A nil
// transcriber or empty path yields nil without logging a warning.
func Resolve(ctx context.Context, t Transcriber, audioPath string) []captions.Word {
	if t == nil || audioPath == "" {
		return nil
	}

	words, err := t.Transcribe(ctx, audioPath)
	if err != nil {
		slog.Warn("transcription unavailable, using uniform timing",
			"file", filepath.Base(audioPath), "err", err)
		return nil
	}
	if len(words) == 0 {
		slog.Warn("transcription empty, using uniform timing", "file", filepath.Base(audioPath))
		return nil
	}
	return words
}
