package config

import "strings"

// EstimateDuration returns the expected narration length in seconds of text
// spoken at wordsPerMinute.
func EstimateDuration(text string, wordsPerMinute int) float64 {
	if wordsPerMinute <= 0 {
		wordsPerMinute = Default().TTS.WordsPerMinute
	}
	words := len(strings.Fields(text))
	return float64(words) * 60 / float64(wordsPerMinute)
}
