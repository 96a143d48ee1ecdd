package captions

// Word is a single spoken word with its timing in seconds.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a run of consecutive words shown together as one caption.
type Segment struct {
	Text  string `json:"text"`
	Words []Word `json:"words"`
}

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the length of the interval in seconds.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// Frame is one highlight state of a segment: Highlight is the index of the
// emphasized word, every other word is drawn in the neutral style.
type Frame struct {
	Segment   *Segment
	Highlight int
	Interval
}

// Word returns the highlighted word.
func (f Frame) Word() Word {
	return f.Segment.Words[f.Highlight]
}

// Start returns the time the segment appears on screen.
func (s Segment) Start() float64 {
	if len(s.Words) == 0 {
		return 0
	}
	return s.Words[0].Start
}

// End returns the time the segment leaves the screen.
func (s Segment) End() float64 {
	if len(s.Words) == 0 {
		return 0
	}
	return s.Words[len(s.Words)-1].End
}

// Intervals returns the highlight interval of every word in the segment.
// Word i is highlighted from its own start until the next word starts; the
// last word keeps its own end. Adjacent intervals share their boundary, so the
// segment's time span is covered without gaps or overlaps.
func (s Segment) Intervals() []Interval {
	out := make([]Interval, len(s.Words))
	for i, w := range s.Words {
		end := w.End
		if i+1 < len(s.Words) {
			end = s.Words[i+1].Start
		}
		out[i] = Interval{Start: w.Start, End: end}
	}
	return out
}

// Frames returns the caption frames of the segment in highlight order.
func (s *Segment) Frames() []Frame {
	intervals := s.Intervals()
	frames := make([]Frame, len(intervals))
	for i, iv := range intervals {
		frames[i] = Frame{Segment: s, Highlight: i, Interval: iv}
	}
	return frames
}

// Frames flattens the caption frames of all segments in time order.
func Frames(segments []Segment) []Frame {
	var frames []Frame
	for i := range segments {
		frames = append(frames, segments[i].Frames()...)
	}
	return frames
}
