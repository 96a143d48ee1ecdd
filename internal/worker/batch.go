package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/time/rate"

	"github.com/yusuftas/PRGAVI/internal/config"
	"github.com/yusuftas/PRGAVI/internal/ffmpeg"
	"github.com/yusuftas/PRGAVI/internal/transcribe"
)

// Job is one script found in a batch directory. OutputName is the file name
// stem of its outputs, unique within the batch.
type Job struct {
	Name           string
	OutputName     string
	ScriptPath     string
	AudioPath      string
	TranscriptPath string
}

// BatchOptions configures a batch run.
type BatchOptions struct {
	Dir             string
	OutputDir       string // defaults to Dir
	NoAsync         bool
	MaxConcurrent   int
	RateLimitPerMin int
	MaxRetries      int
	WriteSRT        bool
	SaveTranscript  bool
	Transcriber     transcribe.Transcriber
	Config          *config.Config
}

const transcriptSuffix = ".transcript.json"

// Discover lists the scripts in dir. Every <name>.txt is a job; a sibling
// audio or video file with the same name is its narration and a sibling
// <name>.transcript.json (or the <output-name>.transcript.json a previous run
// saved) its precomputed transcription. Scripts whose safe names collide get
// numbered output names in sorted order.
func Discover(dir string) ([]Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read batch dir: %w", err)
	}

	media := make(map[string]string)
	files := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		files[name] = true
		ext := filepath.Ext(name)
		if ffmpeg.IsAudioExtension(ext) || ffmpeg.IsVideoExtension(ext) {
			base := strings.TrimSuffix(name, ext)
			// Prefer audio over video when both exist.
			if prev, ok := media[base]; !ok || ffmpeg.IsVideoExtension(filepath.Ext(prev)) {
				media[base] = name
			}
		}
	}

	var jobs []Job
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".txt") {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		job := Job{Name: base, ScriptPath: filepath.Join(dir, name)}
		if m, ok := media[base]; ok {
			job.AudioPath = filepath.Join(dir, m)
		}
		jobs = append(jobs, job)
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })
	assignOutputNames(jobs)

	for i := range jobs {
		for _, stem := range []string{jobs[i].Name, jobs[i].OutputName} {
			if files[stem+transcriptSuffix] {
				jobs[i].TranscriptPath = filepath.Join(dir, stem+transcriptSuffix)
				break
			}
		}
	}
	return jobs, nil
}

// assignOutputNames gives every job a distinct safe output name. Jobs must be
// sorted so numbering is stable between runs.
func assignOutputNames(jobs []Job) {
	taken := make(map[string]bool, len(jobs))
	for i := range jobs {
		safe := SafeName(jobs[i].Name)
		if safe == "" {
			safe = "script"
		}
		name := safe
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d", safe, n)
		}
		taken[name] = true
		jobs[i].OutputName = name
		if name != safe {
			slog.Warn("output name collision, numbering outputs", "job", jobs[i].Name, "output", name)
		}
	}
}

// RunBatch captions every job in opts.Dir. A job that fails is reported in
// its Result and does not stop the others; only cancellation or an unreadable
// directory fails the batch.
func RunBatch(ctx context.Context, opts BatchOptions) ([]Result, error) {
	jobs, err := Discover(opts.Dir)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no .txt scripts found in %s", opts.Dir)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = opts.Dir
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimitPerMin > 0 {
		// Tokens per second = RPM / 60.
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RateLimitPerMin)/60.0), 1)
	}

	slog.Info("batch started", "dir", opts.Dir, "jobs", len(jobs))

	var results []Result
	if !opts.NoAsync && len(jobs) > 1 {
		results, err = processConcurrent(ctx, jobs, opts, limiter)
	} else {
		results, err = processSequential(ctx, jobs, opts, limiter)
	}
	if err != nil {
		return results, err
	}

	captioned := 0
	for _, r := range results {
		if r.Captioned {
			captioned++
		}
	}
	slog.Info("batch finished", "captioned", captioned, "failed", len(results)-captioned)
	return results, nil
}

func (opts BatchOptions) jobOptions(job Job, limiter *rate.Limiter) Options {
	name := job.OutputName
	if name == "" {
		name = SafeName(job.Name)
	}
	transcriptPath := job.TranscriptPath
	if transcriptPath == "" {
		saved := filepath.Join(opts.OutputDir, name+transcriptSuffix)
		if _, err := os.Stat(saved); err == nil {
			transcriptPath = saved
		}
	}
	o := Options{
		ScriptPath:     job.ScriptPath,
		AudioPath:      job.AudioPath,
		TranscriptPath: transcriptPath,
		OutputPath:     filepath.Join(opts.OutputDir, name+".captions.json"),
		SaveTranscript: opts.SaveTranscript,
		Transcriber:    opts.Transcriber,
		Limiter:        limiter,
		MaxRetries:     opts.MaxRetries,
		Config:         opts.Config,
	}
	if opts.WriteSRT {
		o.SRTPath = filepath.Join(opts.OutputDir, name+".srt")
	}
	return o
}

func runJob(ctx context.Context, job Job, opts BatchOptions, limiter *rate.Limiter) Result {
	res, err := Run(ctx, opts.jobOptions(job, limiter))
	if res == nil {
		res = &Result{Name: job.Name}
	}
	res.Name = job.Name
	if err != nil {
		res.Err = err
		slog.Warn("job failed", "job", job.Name, "err", err)
	}
	return *res
}

// WriteSummary prints one line per job result.
func WriteSummary(w io.Writer, results []Result) {
	for _, r := range results {
		if r.Captioned {
			fmt.Fprintf(w, "ok    %-30s %3d segments (%s) -> %s\n", r.Name, r.Segments, r.Source, r.OutputPath)
		} else {
			fmt.Fprintf(w, "fail  %-30s %v\n", r.Name, r.Err)
		}
	}
}
