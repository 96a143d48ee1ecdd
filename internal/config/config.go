package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// CaptionSettings holds caption grouping and styling parameters.
type CaptionSettings struct {
	MaxWords       int    `json:"max_words"`
	MaxChars       int    `json:"max_chars"`
	CharsPerLine   int    `json:"chars_per_line"`
	FontColor      string `json:"font_color"`
	HighlightColor string `json:"highlight_color"`
	StrokeColor    string `json:"stroke_color"`
	FontSize       int    `json:"font_size"`
}

// TranscriptionSettings selects and tunes the speech-to-text engines.
type TranscriptionSettings struct {
	Engine          string `json:"engine"` // none, whisperx, openai, elevenlabs, auto
	WhisperXBinary  string `json:"whisperx_binary"`
	WhisperXModel   string `json:"whisperx_model"`
	OpenAIModel     string `json:"openai_model"`
	Language        string `json:"language"`
	CachePath       string `json:"cache_path"`
	MaxRetries      int    `json:"max_retries"`
	RateLimitPerMin int    `json:"rate_limit_per_min"`
}

// VideoSettings describes the target vertical video.
type VideoSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`
}

// TTSSettings holds narration parameters used for duration estimates.
type TTSSettings struct {
	WordsPerMinute int `json:"words_per_minute"`
}

// Config holds the full application configuration.
type Config struct {
	Captions      CaptionSettings       `json:"captions"`
	Transcription TranscriptionSettings `json:"transcription"`
	Video         VideoSettings         `json:"video"`
	TTS           TTSSettings           `json:"tts"`

	MaxConcurrentJobs int `json:"max_concurrent_jobs"`
}

// Default returns a Config with hardcoded defaults.
func Default() *Config {
	return &Config{
		Captions: CaptionSettings{
			MaxWords:       8,
			MaxChars:       60,
			CharsPerLine:   30,
			FontColor:      "#FFFFFF",
			HighlightColor: "#FFD700",
			StrokeColor:    "#000000",
			FontSize:       80,
		},
		Transcription: TranscriptionSettings{
			Engine:          EngineNone,
			WhisperXBinary:  "whisperx",
			WhisperXModel:   "small",
			OpenAIModel:     "whisper-1",
			Language:        "en",
			MaxRetries:      3,
			RateLimitPerMin: 30,
		},
		Video: VideoSettings{
			Width:  1080,
			Height: 1920,
			FPS:    30,
		},
		TTS: TTSSettings{
			WordsPerMinute: 180,
		},
		MaxConcurrentJobs: 3,
	}
}

// Transcription engines.
const (
	EngineNone       = "none"
	EngineWhisperX   = "whisperx"
	EngineOpenAI     = "openai"
	EngineElevenLabs = "elevenlabs"
	EngineAuto       = "auto"
)

// ValidEngine reports whether name is a known transcription engine.
func ValidEngine(name string) bool {
	switch strings.ToLower(name) {
	case EngineNone, EngineWhisperX, EngineOpenAI, EngineElevenLabs, EngineAuto:
		return true
	}
	return false
}

// Load reads a JSON config file and overlays it on the defaults. Keys missing
// from the file keep their default values. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Transcription.Engine = strings.ToLower(cfg.Transcription.Engine)
	if !ValidEngine(cfg.Transcription.Engine) {
		return nil, fmt.Errorf("unknown transcription engine %q", cfg.Transcription.Engine)
	}
	return cfg, nil
}
