package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Captions.MaxWords != 8 || cfg.Captions.MaxChars != 60 {
		t.Errorf("caption bounds = %d words / %d chars", cfg.Captions.MaxWords, cfg.Captions.MaxChars)
	}
	if cfg.Transcription.Engine != EngineNone {
		t.Errorf("engine = %q, want none", cfg.Transcription.Engine)
	}
	if cfg.TTS.WordsPerMinute != 180 {
		t.Errorf("wpm = %d", cfg.TTS.WordsPerMinute)
	}
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prgavi.json")
	data := `{"captions": {"max_words": 4}, "transcription": {"engine": "WhisperX"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Captions.MaxWords != 4 {
		t.Errorf("max words = %d, want 4", cfg.Captions.MaxWords)
	}
	if cfg.Captions.MaxChars != 60 {
		t.Errorf("max chars = %d, want default 60", cfg.Captions.MaxChars)
	}
	if cfg.Transcription.Engine != EngineWhisperX {
		t.Errorf("engine = %q, want whisperx", cfg.Transcription.Engine)
	}
}

func TestLoad_Missing(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.json")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q): %v", path, err)
		}
		if cfg.Captions.MaxWords != 8 {
			t.Errorf("Load(%q) did not return defaults", path)
		}
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	engine := filepath.Join(dir, "engine.json")
	os.WriteFile(engine, []byte(`{"transcription": {"engine": "sphinx"}}`), 0644)
	if _, err := Load(engine); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		text string
		wpm  int
		want float64
	}{
		{"one two three", 180, 1.0},
		{"one two three", 0, 1.0},
		{"", 180, 0},
		{"a b c d e f", 120, 3.0},
	}
	for _, tt := range tests {
		if got := EstimateDuration(tt.text, tt.wpm); got != tt.want {
			t.Errorf("EstimateDuration(%q, %d) = %f, want %f", tt.text, tt.wpm, got, tt.want)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PRGAVI_TEST_KEY=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PRGAVI_TEST_KEY", "")
	os.Unsetenv("PRGAVI_TEST_KEY")

	if err := LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("PRGAVI_TEST_KEY"); got != "from-file" {
		t.Errorf("PRGAVI_TEST_KEY = %q, want from-file", got)
	}
}
