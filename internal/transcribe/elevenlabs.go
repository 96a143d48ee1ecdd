package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/yusuftas/PRGAVI/internal/api"
	"github.com/yusuftas/PRGAVI/internal/captions"
)

// ElevenLabs transcribes through the ElevenLabs speech-to-text API.
type ElevenLabs struct {
	Client   *api.Client
	Language string
	Progress api.ProgressFunc
}

var _ Transcriber = ElevenLabs{}

// Transcribe implements Transcriber.
func (e ElevenLabs) Transcribe(ctx context.Context, audioPath string) ([]captions.Word, error) {
	if e.Client == nil {
		return nil, fmt.Errorf("ElevenLabs client not configured")
	}
	resp, err := e.Client.Transcribe(ctx, audioPath, e.Language, e.Progress)
	if err != nil {
		return nil, err
	}
	return resp.SpokenWords(), nil
}

// LogProgress reports upload progress at debug level.
func LogProgress(read, total int64) {
	pct := 0.0
	if total > 0 {
		pct = math.Min(float64(read)/float64(total)*100, 100)
	}
	slog.Debug("upload progress", "percent", fmt.Sprintf("%.1f%%", pct))
}
