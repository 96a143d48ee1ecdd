package subtitle

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

func sampleTimeline(t *testing.T) *captions.Timeline {
	t.Helper()
	tl, err := captions.NewBuilderWithFit(captions.MaxFit(2, 0)).BuildTimeline("Stellar Blade delivers action", 4.0, nil)
	if err != nil {
		t.Fatalf("BuildTimeline: %v", err)
	}
	return tl
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("run-1", sampleTimeline(t))

	if doc.Source != captions.SourceUniform || doc.Duration != 4.0 {
		t.Errorf("doc header = %q %f", doc.Source, doc.Duration)
	}
	if len(doc.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(doc.Segments))
	}
	if doc.Segments[1].Start != 2.0 || doc.Segments[1].End != 4.0 {
		t.Errorf("segment 1 = [%f, %f), want [2, 4)", doc.Segments[1].Start, doc.Segments[1].End)
	}
}

func TestDocument_JSONFields(t *testing.T) {
	data, err := json.Marshal(NewDocument("run-1", sampleTimeline(t)))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{`"run_id":"run-1"`, `"source":"uniform"`, `"segments":`, `"word":"Stellar"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON missing %s: %s", key, data)
		}
	}
}

func TestWriteJSONFile_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.captions.json")
	tl := sampleTimeline(t)

	if err := WriteJSONFile(path, NewDocument("run-1", tl)); err != nil {
		t.Fatalf("WriteJSONFile: %v", err)
	}
	doc, err := ReadJSONFile(path)
	if err != nil {
		t.Fatalf("ReadJSONFile: %v", err)
	}
	if !reflect.DeepEqual(doc.Timeline().Segments, tl.Segments) {
		t.Errorf("segments changed on disk: %+v", doc.Segments)
	}
}

func TestSchema(t *testing.T) {
	data, err := json.Marshal(Schema())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"run_id"`, `"segments"`, `"word"`, `"additionalProperties":false`} {
		if !strings.Contains(s, key) {
			t.Errorf("schema missing %s", key)
		}
	}
	if strings.Contains(s, `"$ref"`) {
		t.Error("schema should be inlined")
	}
}
