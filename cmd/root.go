package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yusuftas/PRGAVI/internal/config"
)

var (
	verbose    bool
	quiet      bool
	configPath string
	envFile    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "prgavi",
	Short: "Build word-highlighted caption timelines for short gaming videos",
	Long: `prgavi turns a narration script and its audio into timed caption segments
with a per-word highlight track. Word timings come from a transcription
engine when one is available and are otherwise spread evenly over the audio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		if err := config.LoadEnv(envFile); err != nil {
			return err
		}
		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		slog.Debug("config loaded", "path", configPath, "engine", cfg.Transcription.Engine)
		return nil
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "prgavi.json", "JSON config file (missing file uses defaults)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with API keys")
}
