package captions

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/yusuftas/PRGAVI/internal/config"
)

// Builder turns a script and its narration timing into caption segments.
// A Builder holds no mutable state and is safe for concurrent use.
type Builder struct {
	fit FitFunc
}

// NewBuilder creates a builder bounded by the caption settings. A nil settings
// value uses the default bounds.
func NewBuilder(settings *config.CaptionSettings) *Builder {
	if settings == nil {
		return NewBuilderWithFit(DefaultFit)
	}
	return NewBuilderWithFit(MaxFit(settings.MaxWords, settings.MaxChars))
}

// NewBuilderWithFit creates a builder using a caller-supplied fit function.
func NewBuilderWithFit(fit FitFunc) *Builder {
	if fit == nil {
		fit = DefaultFit
	}
	return &Builder{fit: fit}
}

// Timeline is the result of a build.
type Timeline struct {
	Source   string
	Duration float64
	Segments []Segment
}

// Build resolves word timings for script and groups them into segments.
// transcription may be nil, in which case words are timed uniformly over
// duration.
func (b *Builder) Build(script string, duration float64, transcription []Word) ([]Segment, error) {
	tl, err := b.BuildTimeline(script, duration, transcription)
	if err != nil {
		return nil, err
	}
	return tl.Segments, nil
}

// BuildTimeline is Build, also reporting which timing source was used.
func (b *Builder) BuildTimeline(script string, duration float64, transcription []Word) (*Timeline, error) {
	if strings.TrimSpace(script) == "" {
		return nil, ErrNoScript
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}

	src := Resolve(script, duration, transcription)
	if len(transcription) > 0 && src.Name() != SourceTranscribed {
		slog.Debug("transcription unusable, timing words uniformly", "words", len(transcription))
	}

	segments := b.Segment(src.Timings())
	slog.Debug("caption timeline built",
		"source", src.Name(),
		"segments", len(segments),
		"duration", duration)

	return &Timeline{
		Source:   src.Name(),
		Duration: duration,
		Segments: segments,
	}, nil
}

// Segment greedily packs words into segments from left to right. A word joins
// the current segment when the joined text still fits; otherwise it starts a
// new one. A word that does not fit even on its own is emitted as a one-word
// segment.
func (b *Builder) Segment(words []Word) []Segment {
	if len(words) == 0 {
		return nil
	}

	var segments []Segment
	var current []Word
	var text string

	for _, w := range words {
		if len(current) == 0 {
			current = []Word{w}
			text = w.Text
			continue
		}

		candidate := text + " " + w.Text
		if b.fit(candidate) {
			current = append(current, w)
			text = candidate
			continue
		}

		segments = append(segments, Segment{Text: text, Words: current})
		current = []Word{w}
		text = w.Text
	}

	if len(current) > 0 {
		segments = append(segments, Segment{Text: text, Words: current})
	}
	return segments
}
