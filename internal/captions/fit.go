package captions

import (
	"strings"
	"unicode/utf8"
)

// Default caption bounds.
const (
	DefaultMaxWords = 8
	DefaultMaxChars = 60
)

// FitFunc reports whether text fits on screen as a single caption.
type FitFunc func(text string) bool

// MaxFit returns a FitFunc bounding the word count and the character count
// of a caption. A non-positive bound disables that check.
func MaxFit(maxWords, maxChars int) FitFunc {
	return func(text string) bool {
		if maxWords > 0 && len(strings.Fields(text)) > maxWords {
			return false
		}
		if maxChars > 0 && utf8.RuneCountInString(text) > maxChars {
			return false
		}
		return true
	}
}

// DefaultFit allows at most 8 words and 60 characters per caption.
var DefaultFit = MaxFit(DefaultMaxWords, DefaultMaxChars)
