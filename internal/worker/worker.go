package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/yusuftas/PRGAVI/internal/audio"
	"github.com/yusuftas/PRGAVI/internal/captions"
	"github.com/yusuftas/PRGAVI/internal/config"
	"github.com/yusuftas/PRGAVI/internal/ffmpeg"
	"github.com/yusuftas/PRGAVI/internal/preview"
	"github.com/yusuftas/PRGAVI/internal/subtitle"
	"github.com/yusuftas/PRGAVI/internal/transcribe"
)

// Options configures a single caption job.
type Options struct {
	ScriptPath     string
	Script         string // used instead of ScriptPath when set
	AudioPath      string
	Duration       float64 // seconds; overrides the audio length when positive
	TranscriptPath string
	OutputPath     string // captions JSON
	SRTPath        string
	SaveTranscript bool
	Preview        io.Writer

	Transcriber transcribe.Transcriber
	Limiter     *rate.Limiter
	MaxRetries  int
	Config      *config.Config
}

// Result describes the outcome of one job.
type Result struct {
	Name       string
	RunID      string
	Captioned  bool
	Source     string
	Segments   int
	Duration   float64
	OutputPath string
	SRTPath    string
	Err        error
}

// Run builds the caption timeline for one script and writes its outputs.
// When the timeline cannot be built the result is returned with
// Captioned=false together with the error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	res := &Result{Name: jobName(opts), RunID: uuid.NewString()}
	log := slog.With("job", res.Name, "run_id", res.RunID)

	script, err := readScript(opts)
	if err != nil {
		res.Err = err
		return res, err
	}

	audioPath := opts.AudioPath
	if audioPath != "" && ffmpeg.IsVideoExtension(filepath.Ext(audioPath)) && ffmpeg.Available() {
		extracted, cleanup, err := extractAudio(ctx, audioPath)
		if err != nil {
			log.Warn("audio extraction failed, using input as-is", "err", err)
		} else {
			defer cleanup()
			audioPath = extracted
		}
	}

	res.Duration = resolveDuration(ctx, log, opts, audioPath, script, cfg)

	words := loadTranscription(ctx, log, opts, audioPath)

	builder := captions.NewBuilder(&cfg.Captions)
	tl, err := builder.BuildTimeline(script, res.Duration, words)
	if err != nil {
		log.Error("no captions for job", "err", err)
		res.Err = err
		return res, err
	}
	res.Captioned = true
	res.Source = tl.Source
	res.Segments = len(tl.Segments)

	if err := writeOutputs(opts, cfg, res, tl, words); err != nil {
		res.Err = err
		return res, err
	}

	if opts.Preview != nil {
		if err := preview.New(opts.Preview, &cfg.Captions).Render(tl); err != nil {
			log.Warn("preview failed", "err", err)
		}
	}

	log.Info("captions built",
		"source", res.Source,
		"segments", res.Segments,
		"duration", fmt.Sprintf("%.2fs", res.Duration))
	return res, nil
}

func jobName(opts Options) string {
	if opts.ScriptPath == "" {
		return "captions"
	}
	base := filepath.Base(opts.ScriptPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readScript(opts Options) (string, error) {
	if opts.Script != "" || opts.ScriptPath == "" {
		return opts.Script, nil
	}
	data, err := os.ReadFile(opts.ScriptPath)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}

func extractAudio(ctx context.Context, videoPath string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "prgavi-audio-*")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	out := filepath.Join(dir, base+".wav")
	if err := ffmpeg.ExtractAudio(ctx, videoPath, out); err != nil {
		cleanup()
		return "", nil, err
	}
	return out, cleanup, nil
}

// resolveDuration picks the timeline length: an explicit duration, then the
// audio length, then an estimate from the script's word count. A value the
// builder rejects is passed through so the job reports it.
func resolveDuration(ctx context.Context, log *slog.Logger, opts Options, audioPath, script string, cfg *config.Config) float64 {
	if opts.Duration != 0 {
		return opts.Duration
	}
	if audioPath != "" {
		d, err := audio.Duration(ctx, audioPath)
		if err == nil {
			return d
		}
		log.Warn("cannot measure audio, estimating duration", "err", err)
	}
	d := config.EstimateDuration(script, cfg.TTS.WordsPerMinute)
	log.Debug("estimated narration duration", "seconds", d, "wpm", cfg.TTS.WordsPerMinute)
	return d
}

func loadTranscription(ctx context.Context, log *slog.Logger, opts Options, audioPath string) []captions.Word {
	if opts.TranscriptPath != "" {
		words, err := transcribe.DecodeFile(opts.TranscriptPath)
		if err != nil {
			log.Warn("transcript unreadable, using uniform timing", "err", err)
			return nil
		}
		return words
	}
	if opts.Transcriber == nil {
		return nil
	}
	t := retrying{next: opts.Transcriber, limiter: opts.Limiter, maxRetries: opts.MaxRetries}
	return transcribe.Resolve(ctx, t, audioPath)
}

func writeOutputs(opts Options, cfg *config.Config, res *Result, tl *captions.Timeline, words []captions.Word) error {
	res.OutputPath = opts.OutputPath
	if res.OutputPath == "" {
		res.OutputPath = defaultOutput(opts)
	}
	if err := subtitle.WriteJSONFile(res.OutputPath, subtitle.NewDocument(res.RunID, tl)); err != nil {
		return err
	}

	if opts.SRTPath != "" {
		if err := subtitle.WriteSRTFile(opts.SRTPath, tl.Segments, subtitle.StyleFrom(&cfg.Captions)); err != nil {
			return err
		}
		res.SRTPath = opts.SRTPath
	}

	if opts.SaveTranscript && opts.TranscriptPath == "" && len(words) > 0 {
		path := strings.TrimSuffix(res.OutputPath, ".captions.json")
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".transcript.json"
		if err := saveTranscript(path, words); err != nil {
			slog.Warn("failed to save transcript", "path", path, "err", err)
		}
	}
	return nil
}

func defaultOutput(opts Options) string {
	if opts.ScriptPath == "" {
		return "captions.json"
	}
	return strings.TrimSuffix(opts.ScriptPath, filepath.Ext(opts.ScriptPath)) + ".captions.json"
}

func saveTranscript(path string, words []captions.Word) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := transcribe.Encode(f, words); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
