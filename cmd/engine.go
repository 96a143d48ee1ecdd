package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yusuftas/PRGAVI/internal/config"
	"github.com/yusuftas/PRGAVI/internal/store"
	"github.com/yusuftas/PRGAVI/internal/transcribe"
)

// Transcription flags shared by captions and batch.
var (
	engine     string
	language   string
	cachePath  string
	maxRetries int
)

func addTranscriptionFlags(cmd *cobra.Command) {
	defaults := config.Default().Transcription
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "transcription engine: none, whisperx, openai, elevenlabs, auto (default from config)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "spoken language code (default from config)")
	cmd.Flags().StringVar(&cachePath, "cache", "", fmt.Sprintf("SQLite transcript cache path, e.g. %s", store.DefaultPath()))
	cmd.Flags().IntVar(&maxRetries, "max-retries", defaults.MaxRetries, "transcription attempts per file")
}

// newTranscriber applies the transcription flags to the config and builds
// the selected engine. The returned close function releases the cache.
func newTranscriber(cmd *cobra.Command) (transcribe.Transcriber, func(), error) {
	settings := cfg.Transcription
	if engine != "" {
		if !config.ValidEngine(engine) {
			return nil, nil, fmt.Errorf("unknown engine %q", engine)
		}
		settings.Engine = engine
	}
	if language != "" {
		settings.Language = language
	}
	if cmd.Flags().Changed("cache") {
		settings.CachePath = cachePath
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.Transcription.MaxRetries = maxRetries
	}

	keys := transcribe.Keys{
		OpenAI:     os.Getenv(config.EnvOpenAIKey),
		ElevenLabs: os.Getenv(config.EnvElevenLabsKey),
	}

	var cache transcribe.Cache
	closeFn := func() {}
	if settings.CachePath != "" && settings.Engine != config.EngineNone {
		st, err := store.Open(settings.CachePath)
		if err != nil {
			return nil, nil, err
		}
		cache = st
		closeFn = func() { st.Close() }
	}

	t, err := transcribe.NewEngine(settings, keys, cache)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("transcription engine %q: %w", settings.Engine, err)
	}
	return t, closeFn, nil
}
