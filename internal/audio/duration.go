// Package audio resolves the length of a narration track.
package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/wav"

	"github.com/yusuftas/PRGAVI/internal/ffmpeg"
)

// Duration returns the length of an audio or video file in seconds. WAV files
// are measured from their frame count; anything else goes through ffprobe.
func Duration(ctx context.Context, path string) (float64, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		d, err := WAVDuration(path)
		if err == nil {
			return d, nil
		}
		// Some encoders write WAV headers beep cannot parse.
		if !ffmpeg.Available() {
			return 0, err
		}
	}

	info, err := ffmpeg.ProbeMedia(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", filepath.Base(path), err)
	}
	if info.Duration <= 0 {
		return 0, fmt.Errorf("probe %s: no duration", filepath.Base(path))
	}
	return info.Duration, nil
}

// WAVDuration reads the WAV header and returns frames / sample rate.
func WAVDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	d := format.SampleRate.D(streamer.Len()).Seconds()
	if d <= 0 {
		return 0, fmt.Errorf("wav %s has no audio frames", filepath.Base(path))
	}
	return d, nil
}
