package captions

import (
	"strings"
)

// TimingSource decides where word timings come from. It is resolved once per
// build and is either Transcribed or Uniform.
type TimingSource interface {
	// Timings returns the timed words in spoken order.
	Timings() []Word
	// Name identifies the source in logs and output documents.
	Name() string

	timingSource()
}

// Transcribed carries word timings produced by a speech-to-text engine.
type Transcribed []Word

// Uniform spreads the script's words evenly over the audio duration.
//
// This assumes a constant speaking rate, so highlights drift from the voice
// wherever the narrator speeds up or pauses. It is the fallback when no
// transcription is available.
type Uniform struct {
	Script   string
	Duration float64
}

// Source names.
const (
	SourceTranscribed = "transcribed"
	SourceUniform     = "uniform"
)

func (Transcribed) timingSource() {}
func (Uniform) timingSource()     {}

// Name implements TimingSource.
func (Transcribed) Name() string { return SourceTranscribed }

// Name implements TimingSource.
func (Uniform) Name() string { return SourceUniform }

// Timings implements TimingSource.
func (t Transcribed) Timings() []Word {
	words := make([]Word, len(t))
	copy(words, t)
	return words
}

// Timings implements TimingSource. Word i spans [i*d, (i+1)*d) with
// d = Duration / N; the last word ends exactly at Duration.
func (u Uniform) Timings() []Word {
	fields := strings.Fields(u.Script)
	if len(fields) == 0 {
		return nil
	}

	perWord := u.Duration / float64(len(fields))
	words := make([]Word, len(fields))
	for i, f := range fields {
		words[i] = Word{
			Text:  f,
			Start: float64(i) * perWord,
			End:   float64(i+1) * perWord,
		}
	}
	words[len(words)-1].End = u.Duration
	return words
}

// Resolve picks the timing source for a build. A transcription is used only
// when it has at least one non-blank word and its start times never decrease;
// otherwise the script is timed uniformly over duration.
func Resolve(script string, duration float64, transcription []Word) TimingSource {
	if words, ok := cleanTranscription(transcription); ok {
		return Transcribed(words)
	}
	return Uniform{Script: script, Duration: duration}
}

// cleanTranscription trims word text and drops blank tokens. It reports false
// when nothing usable remains or start times go backwards.
func cleanTranscription(transcription []Word) ([]Word, bool) {
	if len(transcription) == 0 {
		return nil, false
	}

	words := make([]Word, 0, len(transcription))
	for _, w := range transcription {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" {
			continue
		}
		if n := len(words); n > 0 && w.Start < words[n-1].Start {
			return nil, false
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return nil, false
	}
	return words, true
}
