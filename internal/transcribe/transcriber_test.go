package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

var hiThere = []captions.Word{
	{Text: "Hi", Start: 0, End: 0.4},
	{Text: "there", Start: 0.4, End: 0.9},
}

func failing(msg string) Transcriber {
	return Func(func(context.Context, string) ([]captions.Word, error) {
		return nil, errors.New(msg)
	})
}

func returning(words []captions.Word) Transcriber {
	return Func(func(context.Context, string) ([]captions.Word, error) {
		return words, nil
	})
}

func TestChain_FirstSuccessWins(t *testing.T) {
	c := Chain{failing("local model missing"), returning(nil), returning(hiThere), failing("never called")}

	words, err := c.Transcribe(context.Background(), "a.wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(words) != 2 {
		t.Errorf("expected 2 words, got %d", len(words))
	}
}

func TestChain_AllFail(t *testing.T) {
	c := Chain{failing("one"), failing("two")}

	_, err := c.Transcribe(context.Background(), "a.wav")
	if !errors.Is(err, ErrNoTranscriber) {
		t.Fatalf("err = %v, want ErrNoTranscriber", err)
	}
	if !strings.Contains(err.Error(), "one") || !strings.Contains(err.Error(), "two") {
		t.Errorf("error should mention both failures: %v", err)
	}
}

func TestChain_Empty(t *testing.T) {
	_, err := Chain{}.Transcribe(context.Background(), "a.wav")
	if !errors.Is(err, ErrNoTranscriber) {
		t.Errorf("err = %v, want ErrNoTranscriber", err)
	}
}

func TestChain_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Chain{returning(hiThere)}.Transcribe(ctx, "a.wav")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestResolve_FailureBecomesAbsent(t *testing.T) {
	ctx := context.Background()

	if words := Resolve(ctx, failing("network down"), "a.wav"); words != nil {
		t.Errorf("expected nil on failure, got %v", words)
	}
	if words := Resolve(ctx, nil, "a.wav"); words != nil {
		t.Errorf("expected nil without transcriber, got %v", words)
	}
	if words := Resolve(ctx, returning(hiThere), ""); words != nil {
		t.Errorf("expected nil without audio, got %v", words)
	}
	if words := Resolve(ctx, returning(hiThere), "a.wav"); len(words) != 2 {
		t.Errorf("expected transcription, got %v", words)
	}
}

type memCache struct {
	entries map[string][]captions.Word
	puts    int
}

func (m *memCache) Get(_ context.Context, hash string) ([]captions.Word, bool, error) {
	w, ok := m.entries[hash]
	return w, ok, nil
}

func (m *memCache) Put(_ context.Context, hash, _ string, words []captions.Word) error {
	m.entries[hash] = words
	m.puts++
	return nil
}

func TestCached_TranscribesOnce(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "voice.wav")
	if err := os.WriteFile(audio, []byte("fake audio bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	calls := 0
	next := Func(func(context.Context, string) ([]captions.Word, error) {
		calls++
		return hiThere, nil
	})
	cache := &memCache{entries: map[string][]captions.Word{}}
	c := Cached{Next: next, Cache: cache, Engine: "test"}

	for i := 0; i < 3; i++ {
		words, err := c.Transcribe(context.Background(), audio)
		if err != nil {
			t.Fatalf("Transcribe: %v", err)
		}
		if len(words) != 2 {
			t.Fatalf("expected 2 words, got %d", len(words))
		}
	}
	if calls != 1 {
		t.Errorf("underlying transcriber called %d times, want 1", calls)
	}
	if cache.puts != 1 {
		t.Errorf("cache puts = %d, want 1", cache.puts)
	}
}

func TestCached_MissingFile(t *testing.T) {
	c := Cached{Next: returning(hiThere), Cache: &memCache{entries: map[string][]captions.Word{}}}
	if _, err := c.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected error for missing audio")
	}
}

func TestHash_Stable(t *testing.T) {
	a, err := Hash(strings.NewReader("narration"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, _ := Hash(strings.NewReader("narration"))
	c, _ := Hash(strings.NewReader("narration2"))
	if a != b {
		t.Error("same input should hash equally")
	}
	if a == c {
		t.Error("different input should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestWhisperX_Args(t *testing.T) {
	w := WhisperX{Model: "small", Language: "en"}
	args := strings.Join(w.args("/tmp/voice.wav", "/tmp/out"), " ")
	want := "/tmp/voice.wav --output_format json --output_dir /tmp/out --model small --language en"
	if args != want {
		t.Errorf("args = %q, want %q", args, want)
	}

	auto := strings.Join(WhisperX{Language: "auto"}.args("a.wav", "o"), " ")
	if strings.Contains(auto, "--language") {
		t.Errorf("auto language should not pass --language: %q", auto)
	}
}

func TestWhisperX_MissingBinary(t *testing.T) {
	w := WhisperX{Binary: "definitely-not-a-real-whisperx-binary"}
	if w.Available() {
		t.Skip("unexpected binary on PATH")
	}
	if _, err := w.Transcribe(context.Background(), "a.wav"); err == nil {
		t.Error("expected error for missing binary")
	}
}

func TestNewOpenAI_RequiresKey(t *testing.T) {
	if _, err := NewOpenAI("", "", "en"); err == nil {
		t.Error("expected error without API key")
	}
}

func TestCached_KeyedByEngineAndLanguage(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "voice.wav")
	if err := os.WriteFile(audio, []byte("fake audio bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	calls := 0
	next := Func(func(context.Context, string) ([]captions.Word, error) {
		calls++
		return hiThere, nil
	})
	cache := &memCache{entries: map[string][]captions.Word{}}

	runs := []Cached{
		{Next: next, Cache: cache, Engine: "whisperx", Language: "en"},
		{Next: next, Cache: cache, Engine: "openai", Language: "en"},
		{Next: next, Cache: cache, Engine: "openai", Language: "de"},
		{Next: next, Cache: cache, Engine: "openai", Language: "DE"},
	}
	for _, c := range runs {
		if _, err := c.Transcribe(context.Background(), audio); err != nil {
			t.Fatalf("Transcribe: %v", err)
		}
	}
	if calls != 3 {
		t.Errorf("underlying transcriber called %d times, want 3", calls)
	}
	if len(cache.entries) != 3 {
		t.Errorf("cache entries = %d, want 3", len(cache.entries))
	}
}
