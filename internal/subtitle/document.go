// Package subtitle writes caption timelines to disk: the JSON document
// consumed by the video compositor and an SRT highlight track.
package subtitle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

// Document is the JSON form of a caption timeline.
type Document struct {
	RunID    string    `json:"run_id" jsonschema_description:"Identifier of the run that produced this timeline"`
	Source   string    `json:"source" jsonschema:"enum=transcribed,enum=uniform" jsonschema_description:"Where the word timings came from"`
	Duration float64   `json:"duration" jsonschema_description:"Length of the narration audio in seconds"`
	Segments []Segment `json:"segments" jsonschema_description:"Caption segments in display order"`
}

// Segment is one caption shown on screen, with its words and their timings.
type Segment struct {
	Text  string          `json:"text" jsonschema_description:"The words of the segment joined by single spaces"`
	Start float64         `json:"start" jsonschema_description:"When the segment appears, in seconds"`
	End   float64         `json:"end" jsonschema_description:"When the segment disappears, in seconds"`
	Words []captions.Word `json:"words" jsonschema_description:"The segment's words; each is highlighted from its start until the next word starts"`
}

// NewDocument converts a timeline to its JSON form.
func NewDocument(runID string, tl *captions.Timeline) Document {
	doc := Document{
		RunID:    runID,
		Source:   tl.Source,
		Duration: tl.Duration,
		Segments: make([]Segment, len(tl.Segments)),
	}
	for i, s := range tl.Segments {
		doc.Segments[i] = Segment{
			Text:  s.Text,
			Start: s.Start(),
			End:   s.End(),
			Words: s.Words,
		}
	}
	return doc
}

// Timeline converts the document back into caption segments.
func (d Document) Timeline() *captions.Timeline {
	tl := &captions.Timeline{
		Source:   d.Source,
		Duration: d.Duration,
		Segments: make([]captions.Segment, len(d.Segments)),
	}
	for i, s := range d.Segments {
		tl.Segments[i] = captions.Segment{Text: s.Text, Words: s.Words}
	}
	return tl
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode captions: %w", err)
	}
	return nil
}

// WriteJSONFile writes the document to path.
func WriteJSONFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := WriteJSON(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSONFile loads a document written by WriteJSONFile.
func ReadJSONFile(path string) (Document, error) {
	var doc Document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read captions: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse captions: %w", err)
	}
	return doc, nil
}
