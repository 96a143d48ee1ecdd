package transcribe

import (
	"fmt"
	"log/slog"

	"github.com/yusuftas/PRGAVI/internal/api"
	"github.com/yusuftas/PRGAVI/internal/config"
)

// Keys holds API credentials for the hosted engines.
type Keys struct {
	OpenAI     string
	ElevenLabs string
}

// NewEngine builds the transcriber selected by settings.Engine. It returns
// nil for the "none" engine. With "auto" the local whisperX binary is tried
// first, then every hosted engine with a key. A non-nil cache wraps the result.
func NewEngine(settings config.TranscriptionSettings, keys Keys, cache Cache) (Transcriber, error) {
	t, err := newEngine(settings, keys)
	if err != nil || t == nil {
		return nil, err
	}
	if cache != nil {
		t = Cached{Next: t, Cache: cache, Engine: settings.Engine, Language: settings.Language}
	}
	return t, nil
}

func newEngine(s config.TranscriptionSettings, keys Keys) (Transcriber, error) {
	whisperx := WhisperX{Binary: s.WhisperXBinary, Model: s.WhisperXModel, Language: s.Language}

	switch s.Engine {
	case "", config.EngineNone:
		return nil, nil
	case config.EngineWhisperX:
		return whisperx, nil
	case config.EngineOpenAI:
		return NewOpenAI(keys.OpenAI, s.OpenAIModel, s.Language)
	case config.EngineElevenLabs:
		if keys.ElevenLabs == "" {
			return nil, fmt.Errorf("ElevenLabs API key not set")
		}
		return newElevenLabs(s, keys.ElevenLabs), nil
	case config.EngineAuto:
		var chain Chain
		if whisperx.Available() {
			chain = append(chain, whisperx)
		}
		if keys.OpenAI != "" {
			o, err := NewOpenAI(keys.OpenAI, s.OpenAIModel, s.Language)
			if err != nil {
				return nil, err
			}
			chain = append(chain, o)
		}
		if keys.ElevenLabs != "" {
			chain = append(chain, newElevenLabs(s, keys.ElevenLabs))
		}
		if len(chain) == 0 {
			return nil, ErrNoTranscriber
		}
		slog.Debug("auto transcription chain", "engines", len(chain))
		return chain, nil
	default:
		return nil, fmt.Errorf("unknown transcription engine %q", s.Engine)
	}
}

func newElevenLabs(s config.TranscriptionSettings, key string) ElevenLabs {
	return ElevenLabs{
		Client:   api.NewClient(key),
		Language: s.Language,
		Progress: LogProgress,
	}
}
