package worker

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/time/rate"

	"github.com/yusuftas/PRGAVI/internal/captions"
	"github.com/yusuftas/PRGAVI/internal/transcribe"
)

func TestRetrying_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	next := transcribe.Func(func(context.Context, string) ([]captions.Word, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("503")
		}
		return []captions.Word{{Text: "ok", Start: 0, End: 1}}, nil
	})

	r := retrying{next: next, limiter: rate.NewLimiter(rate.Inf, 1), maxRetries: 3}
	words, err := r.Transcribe(context.Background(), "a.wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(words) != 1 || calls != 3 {
		t.Errorf("words = %v after %d calls", words, calls)
	}
}

func TestRetrying_GivesUp(t *testing.T) {
	sentinel := errors.New("bad audio")
	next := transcribe.Func(func(context.Context, string) ([]captions.Word, error) {
		return nil, sentinel
	})

	_, err := retrying{next: next, maxRetries: 2}.Transcribe(context.Background(), "a.wav")
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want wrapped sentinel", err)
	}
}

func TestRetrying_ZeroRetriesStillTriesOnce(t *testing.T) {
	calls := 0
	next := transcribe.Func(func(context.Context, string) ([]captions.Word, error) {
		calls++
		return nil, errors.New("fail")
	})

	retrying{next: next}.Transcribe(context.Background(), "a.wav")
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetrying_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	next := transcribe.Func(func(context.Context, string) ([]captions.Word, error) {
		cancel()
		return nil, errors.New("interrupted")
	})

	_, err := retrying{next: next, maxRetries: 5}.Transcribe(ctx, "a.wav")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"Elden Ring":               "elden_ring",
		"Hades: II":                "hades__ii",
		"Sid Meier's Civilization": "sid_meier's_civilization",
		`What?*"<>|/\`:             "what________",
		"  Stellar-Blade ":         "stellar_blade",
	}
	for in, want := range tests {
		if got := SafeName(in); got != want {
			t.Errorf("SafeName(%q) = %q, want %q", in, got, want)
		}
	}
}
