package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/yusuftas/PRGAVI/internal/captions"
	"github.com/yusuftas/PRGAVI/internal/config"
)

// Style controls how the highlight track is drawn.
type Style struct {
	HighlightColor string
	CharsPerLine   int
}

// StyleFrom builds a Style from caption settings.
func StyleFrom(s *config.CaptionSettings) Style {
	if s == nil {
		s = &config.Default().Captions
	}
	return Style{HighlightColor: s.HighlightColor, CharsPerLine: s.CharsPerLine}
}

// formatSRTTime converts seconds to SRT time format HH:MM:SS,mmm.
func formatSRTTime(seconds float64) string {
	ms := int64(math.Round(math.Abs(seconds) * 1000))
	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, ms/1000, ms%1000)
}

// layoutLines breaks a segment's words into lines of at most charsPerLine
// runes, greedily. A word longer than the limit gets a line of its own.
// A non-positive limit keeps everything on one line.
func layoutLines(words []captions.Word, charsPerLine int) [][]int {
	var lines [][]int
	var line []int
	width := 0

	for i, w := range words {
		n := utf8.RuneCountInString(w.Text)
		if len(line) > 0 && charsPerLine > 0 && width+1+n > charsPerLine {
			lines = append(lines, line)
			line, width = nil, 0
		}
		if len(line) > 0 {
			width++
		}
		line = append(line, i)
		width += n
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// cueText renders a frame with the highlighted word wrapped in a font tag.
func cueText(f captions.Frame, style Style) string {
	lines := layoutLines(f.Segment.Words, style.CharsPerLine)
	out := make([]string, len(lines))
	for li, line := range lines {
		parts := make([]string, len(line))
		for j, idx := range line {
			text := f.Segment.Words[idx].Text
			if idx == f.Highlight && style.HighlightColor != "" {
				text = fmt.Sprintf(`<font color="%s">%s</font>`, style.HighlightColor, text)
			}
			parts[j] = text
		}
		out[li] = strings.Join(parts, " ")
	}
	return strings.Join(out, "\n")
}

// WriteSRT writes one cue per caption frame: the whole segment is shown and
// the active word is colored. Frames with no duration are skipped because a
// player would never display them.
func WriteSRT(w io.Writer, segments []captions.Segment, style Style) error {
	bw := bufio.NewWriter(w)
	index := 0
	for _, f := range captions.Frames(segments) {
		if f.Duration() <= 0 {
			continue
		}
		index++
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			index,
			formatSRTTime(f.Start),
			formatSRTTime(f.End),
			cueText(f, style))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write SRT: %w", err)
	}
	return nil
}

// WriteSRTFile writes the highlight track to path.
func WriteSRTFile(path string, segments []captions.Segment, style Style) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create SRT file: %w", err)
	}
	if err := WriteSRT(f, segments, style); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
