package captions

import (
	"testing"
)

func TestSegment_IntervalsLastWordUsesOwnEnd(t *testing.T) {
	s := Segment{
		Text: "fast paced combat",
		Words: []Word{
			{Text: "fast", Start: 1.0, End: 1.2},
			{Text: "paced", Start: 1.5, End: 1.8},
			{Text: "combat", Start: 1.8, End: 2.6},
		},
	}

	got := s.Intervals()
	want := []Interval{
		{Start: 1.0, End: 1.5}, // pause after "fast" stays highlighted
		{Start: 1.5, End: 1.8},
		{Start: 1.8, End: 2.6},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d intervals, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("interval %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if s.Start() != 1.0 || s.End() != 2.6 {
		t.Errorf("segment span = [%f, %f], want [1.0, 2.6]", s.Start(), s.End())
	}
}

func TestFrames(t *testing.T) {
	segs := []Segment{
		{Text: "a b", Words: []Word{{Text: "a", Start: 0, End: 1}, {Text: "b", Start: 1, End: 2}}},
		{Text: "c", Words: []Word{{Text: "c", Start: 2, End: 3}}},
	}

	frames := Frames(segs)
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if frames[1].Highlight != 1 || frames[1].Word().Text != "b" {
		t.Errorf("frame 1 highlights %d (%q), want 1 (b)", frames[1].Highlight, frames[1].Word().Text)
	}
	if frames[2].Segment.Text != "c" {
		t.Errorf("frame 2 segment = %q, want c", frames[2].Segment.Text)
	}
	for i := 0; i+1 < len(frames); i++ {
		if frames[i].End != frames[i+1].Start {
			t.Errorf("frame %d ends at %f, frame %d starts at %f", i, frames[i].End, i+1, frames[i+1].Start)
		}
	}
}

func TestSegment_EmptySpan(t *testing.T) {
	var s Segment
	if s.Start() != 0 || s.End() != 0 {
		t.Errorf("empty segment span = [%f, %f], want [0, 0]", s.Start(), s.End())
	}
	if len(s.Intervals()) != 0 {
		t.Error("expected no intervals for empty segment")
	}
}
