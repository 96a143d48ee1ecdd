package api

import (
	"strings"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

// Word is a single token from the ElevenLabs transcript.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Type  string  `json:"type"` // "word", "spacing", "audio_event"
}

// TranscriptResponse is the top-level JSON structure from ElevenLabs.
type TranscriptResponse struct {
	LanguageCode string `json:"language_code"`
	Text         string `json:"text"`
	Words        []Word `json:"words"`
}

// SpokenWords returns the spoken words with their timings. Spacing tokens and
// audio events are dropped.
func (r *TranscriptResponse) SpokenWords() []captions.Word {
	var out []captions.Word
	for _, w := range r.Words {
		if w.Type != "" && w.Type != "word" {
			continue
		}
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		out = append(out, captions.Word{Text: text, Start: w.Start, End: w.End})
	}
	return out
}
