package transcribe

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

type (
	// Payload is the speech-to-text JSON shape shared by whisperX and the
	// Whisper verbose_json response: segments of timed words, or a flat word
	// list.
	Payload struct {
		Text     string           `json:"text,omitempty"`
		Segments []PayloadSegment `json:"segments,omitempty"`
		Words    []PayloadWord    `json:"words,omitempty"`
	}

	PayloadSegment struct {
		Text  string           `json:"text"`
		Start *decimal.Decimal `json:"start,omitempty"`
		End   *decimal.Decimal `json:"end,omitempty"`
		Words []PayloadWord    `json:"words"`
	}

	// PayloadWord timestamps are optional: whisperX leaves numerals and
	// symbols it cannot align without start/end.
	PayloadWord struct {
		Word  string           `json:"word"`
		Start *decimal.Decimal `json:"start,omitempty"`
		End   *decimal.Decimal `json:"end,omitempty"`
	}
)

func init() {
	// Timestamps are written as JSON numbers, matching whisperX output.
	decimal.MarshalJSONWithoutQuotes = true
}

// Decode reads a transcription payload and flattens it into timed words.
func Decode(r io.Reader) ([]captions.Word, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode transcription: %w", err)
	}
	return p.Flatten(), nil
}

// DecodeFile reads a transcription payload from disk.
func DecodeFile(path string) ([]captions.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcription: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Flatten returns the payload's words in order with timestamps rounded to
// milliseconds. A word without a start inherits the previous word's end (or
// its segment's start); a word without an end ends where it starts.
func (p Payload) Flatten() []captions.Word {
	var words []captions.Word
	cursor := decimal.Zero

	appendWords := func(segStart *decimal.Decimal, ws []PayloadWord) {
		if segStart != nil && segStart.GreaterThan(cursor) {
			cursor = *segStart
		}
		for _, w := range ws {
			start := cursor
			if w.Start != nil {
				start = *w.Start
			}
			end := start
			if w.End != nil && w.End.GreaterThanOrEqual(start) {
				end = *w.End
			}
			cursor = end

			words = append(words, captions.Word{
				Text:  w.Word,
				Start: seconds(start),
				End:   seconds(end),
			})
		}
	}

	if p.segmentWords() {
		for _, s := range p.Segments {
			appendWords(s.Start, s.Words)
		}
	} else {
		appendWords(nil, p.Words)
	}
	return words
}

// segmentWords reports whether word timings live inside the segments. The
// Whisper API puts them in the top-level list and leaves segments bare.
func (p Payload) segmentWords() bool {
	for _, s := range p.Segments {
		if len(s.Words) > 0 {
			return true
		}
	}
	return false
}

// FromWords builds a single-segment payload from timed words.
func FromWords(words []captions.Word) Payload {
	p := Payload{Words: make([]PayloadWord, len(words))}
	for i, w := range words {
		start := decimal.NewFromFloat(w.Start).Round(3)
		end := decimal.NewFromFloat(w.End).Round(3)
		p.Words[i] = PayloadWord{Word: w.Text, Start: &start, End: &end}
	}
	return p
}

// Encode writes words in the flat payload form accepted by Decode.
func Encode(w io.Writer, words []captions.Word) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromWords(words)); err != nil {
		return fmt.Errorf("encode transcription: %w", err)
	}
	return nil
}

func seconds(d decimal.Decimal) float64 {
	f, _ := d.Round(3).Float64()
	return f
}
