package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yusuftas/PRGAVI/internal/worker"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Build caption timelines for every script in a directory",
	Long: `Build caption timelines for every <name>.txt script in a directory.

A sibling audio or video file with the same name is used as narration, and a
sibling <name>.transcript.json as its word timings. Outputs are written as
<safe-name>.captions.json (and <safe-name>.srt with --srt). A script that
cannot be captioned is reported and does not stop the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var (
	batchOutputDir string
	noAsync        bool
	maxConcurrent  int
	rateLimit      int
	batchSRT       bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "", "output directory (default: the input directory)")
	batchCmd.Flags().BoolVar(&noAsync, "no-async", false, "process scripts one at a time")
	batchCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", 0, "max concurrent jobs (default from config)")
	batchCmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "transcription requests per minute (default from config)")
	batchCmd.Flags().BoolVar(&batchSRT, "srt", false, "also write SRT highlight tracks")
	batchCmd.Flags().BoolVar(&saveTranscript, "save-transcript", false, "save engine transcripts next to the outputs")
	addTranscriptionFlags(batchCmd)

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if maxConcurrent > 0 {
		cfg.MaxConcurrentJobs = maxConcurrent
	}
	if rateLimit > 0 {
		cfg.Transcription.RateLimitPerMin = rateLimit
	}

	t, closeCache, err := newTranscriber(cmd)
	if err != nil {
		return err
	}
	defer closeCache()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := worker.RunBatch(ctx, worker.BatchOptions{
		Dir:             args[0],
		OutputDir:       batchOutputDir,
		NoAsync:         noAsync,
		MaxConcurrent:   cfg.MaxConcurrentJobs,
		RateLimitPerMin: cfg.Transcription.RateLimitPerMin,
		MaxRetries:      cfg.Transcription.MaxRetries,
		WriteSRT:        batchSRT,
		SaveTranscript:  saveTranscript,
		Transcriber:     t,
		Config:          cfg,
	})
	if !quiet {
		worker.WriteSummary(cmd.OutOrStdout(), results)
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Captioned {
			failed++
		}
	}
	if failed > 0 {
		slog.Warn("some scripts could not be captioned", "failed", failed, "total", len(results))
	}
	return nil
}
