package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache", "transcripts.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Miss(t *testing.T) {
	s := openTemp(t)

	words, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || words != nil {
		t.Errorf("expected miss, got ok=%v words=%v", ok, words)
	}
}

func TestStore_PutGet(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	words := []captions.Word{
		{Text: "Hi", Start: 0, End: 0.4},
		{Text: "there", Start: 0.4, End: 0.9},
	}
	if err := s.Put(ctx, "abc", "whisperx", words); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 2 || got[1].Text != "there" || got[1].End != 0.9 {
		t.Errorf("got %+v, want %+v", got, words)
	}
}

func TestStore_PutReplaces(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if err := s.Put(ctx, "abc", "openai", []captions.Word{{Text: "old", End: 1}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "abc", "openai", []captions.Word{{Text: "new", End: 1}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, _, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got[0].Text != "new" {
		t.Errorf("text = %q, want 'new'", got[0].Text)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
