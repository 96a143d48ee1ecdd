package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yusuftas/PRGAVI/internal/worker"
)

var captionsCmd = &cobra.Command{
	Use:   "captions [script-file]",
	Short: "Build the caption timeline for one script",
	Long: `Build the caption timeline for one narration script.

The audio duration comes from --duration, from --audio, or is estimated from
the script length. Word timings come from --transcript, from the transcription
engine, or are spread evenly over the duration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCaptions,
}

var (
	text           string
	audioPath      string
	duration       float64
	transcriptPath string
	maxWords       int
	maxChars       int
	output         string
	srtPath        string
	showPreview    bool
	saveTranscript bool
)

func init() {
	captionsCmd.Flags().StringVar(&text, "text", "", "script text (instead of a script file)")
	captionsCmd.Flags().StringVarP(&audioPath, "audio", "a", "", "narration audio or video file")
	captionsCmd.Flags().Float64VarP(&duration, "duration", "d", 0, "audio duration in seconds (overrides --audio)")
	captionsCmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "word-level transcript JSON (whisperX format)")
	captionsCmd.Flags().IntVar(&maxWords, "max-words", 0, "max words per caption (default from config)")
	captionsCmd.Flags().IntVar(&maxChars, "max-chars", 0, "max characters per caption (default from config)")
	captionsCmd.Flags().StringVarP(&output, "output", "o", "", "output JSON path (default: <script>.captions.json)")
	captionsCmd.Flags().StringVar(&srtPath, "srt", "", "also write an SRT highlight track")
	captionsCmd.Flags().BoolVar(&showPreview, "preview", false, "print the caption frames to stdout")
	captionsCmd.Flags().BoolVar(&saveTranscript, "save-transcript", false, "save the engine transcript next to the output")
	addTranscriptionFlags(captionsCmd)

	rootCmd.AddCommand(captionsCmd)
}

func runCaptions(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && text == "" {
		return fmt.Errorf("a script file or --text is required")
	}

	opts := worker.Options{
		Script:         text,
		AudioPath:      audioPath,
		Duration:       duration,
		TranscriptPath: transcriptPath,
		OutputPath:     output,
		SRTPath:        srtPath,
		SaveTranscript: saveTranscript,
		Config:         cfg,
	}
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", args[0])
		}
		opts.ScriptPath = abs
	}
	if audioPath != "" {
		if _, err := os.Stat(audioPath); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", audioPath)
		}
	}
	if maxWords > 0 {
		cfg.Captions.MaxWords = maxWords
	}
	if maxChars > 0 {
		cfg.Captions.MaxChars = maxChars
	}
	if showPreview {
		opts.Preview = cmd.OutOrStdout()
	}

	if audioPath != "" && transcriptPath == "" {
		t, closeCache, err := newTranscriber(cmd)
		if err != nil {
			return err
		}
		defer closeCache()
		opts.Transcriber = t
	}
	opts.MaxRetries = cfg.Transcription.MaxRetries

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := worker.Run(ctx, opts)
	if err != nil {
		return err
	}

	slog.Info("done", "output", res.OutputPath, "segments", res.Segments, "source", res.Source)
	return nil
}
