// Package preview prints caption frames to a terminal, one line per
// highlight state, so a timeline can be checked without rendering video.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yusuftas/PRGAVI/internal/captions"
	"github.com/yusuftas/PRGAVI/internal/config"
)

var colorGray = lipgloss.Color("#666666")

// Renderer draws caption frames with the configured caption colors.
type Renderer struct {
	w         io.Writer
	word      lipgloss.Style
	highlight lipgloss.Style
	timestamp lipgloss.Style
	header    lipgloss.Style
}

// New creates a renderer writing to w. The color profile is detected from w,
// so output piped to a file carries no escape codes.
func New(w io.Writer, settings *config.CaptionSettings) *Renderer {
	if settings == nil {
		settings = &config.Default().Captions
	}
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		w:    w,
		word: r.NewStyle().Foreground(lipgloss.Color(settings.FontColor)),
		highlight: r.NewStyle().
			Foreground(lipgloss.Color(settings.HighlightColor)).
			Bold(true),
		timestamp: r.NewStyle().Foreground(colorGray),
		header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(settings.HighlightColor)),
	}
}

func clock(seconds float64) string {
	ms := int64(seconds*1000 + 0.5)
	return fmt.Sprintf("%02d:%02d.%03d", ms/60_000, ms/1000%60, ms%1000)
}

// Frame renders a single frame without a trailing newline.
func (r *Renderer) Frame(f captions.Frame) string {
	parts := make([]string, len(f.Segment.Words))
	for i, w := range f.Segment.Words {
		if i == f.Highlight {
			parts[i] = r.highlight.Render(w.Text)
		} else {
			parts[i] = r.word.Render(w.Text)
		}
	}
	span := r.timestamp.Render(fmt.Sprintf("%s -> %s", clock(f.Start), clock(f.End)))
	return span + "  " + strings.Join(parts, " ")
}

// Render writes every frame of the timeline, grouped by segment.
func (r *Renderer) Render(tl *captions.Timeline) error {
	title := fmt.Sprintf("%d segments, %s timing, %.2fs", len(tl.Segments), tl.Source, tl.Duration)
	if _, err := fmt.Fprintln(r.w, r.header.Render(title)); err != nil {
		return err
	}
	for i := range tl.Segments {
		seg := &tl.Segments[i]
		if _, err := fmt.Fprintf(r.w, "\n%s\n", r.timestamp.Render(fmt.Sprintf("#%d", i+1))); err != nil {
			return err
		}
		for _, f := range seg.Frames() {
			if _, err := fmt.Fprintln(r.w, r.Frame(f)); err != nil {
				return err
			}
		}
	}
	return nil
}
