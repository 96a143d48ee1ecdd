package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

// OpenAI transcribes through the hosted Whisper API with word timestamps.
type OpenAI struct {
	client   openai.Client
	model    string
	language string
}

var _ Transcriber = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI transcriber. It fails without an API key.
func NewOpenAI(apiKey, model, language string, opts ...option.RequestOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not set")
	}
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAI{
		client:   openai.NewClient(opts...),
		model:    model,
		language: language,
	}, nil
}

// Transcribe implements Transcriber.
func (o *OpenAI) Transcribe(ctx context.Context, audioPath string) ([]captions.Word, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	params := openai.AudioTranscriptionNewParams{
		File:                   f,
		Model:                  openai.AudioModel(o.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word"},
	}
	if o.language != "" && strings.ToLower(o.language) != "auto" {
		params.Language = openai.String(o.language)
	}

	slog.Info("transcribing with OpenAI", "file", filepath.Base(audioPath), "model", o.model)
	resp, err := o.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	raw := resp.RawJSON()
	if raw == "" {
		return nil, fmt.Errorf("OpenAI returned empty transcription")
	}
	words, err := Decode(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("OpenAI transcription: %w", err)
	}
	return words, nil
}
