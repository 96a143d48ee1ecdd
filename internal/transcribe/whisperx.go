package transcribe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

// WhisperX runs the whisperx command line tool locally and reads the JSON
// result it writes next to the requested output directory.
type WhisperX struct {
	Binary    string
	Model     string
	Language  string
	OutputDir string // defaults to a temporary directory
}

var _ Transcriber = WhisperX{}

// Available reports whether the whisperx binary is on the PATH.
func (w WhisperX) Available() bool {
	_, err := exec.LookPath(w.binary())
	return err == nil
}

func (w WhisperX) binary() string {
	if w.Binary == "" {
		return "whisperx"
	}
	return w.Binary
}

// Transcribe implements Transcriber.
func (w WhisperX) Transcribe(ctx context.Context, audioPath string) ([]captions.Word, error) {
	if !w.Available() {
		return nil, fmt.Errorf("whisperx not found: %s", w.binary())
	}

	outDir := w.OutputDir
	if outDir == "" {
		dir, err := os.MkdirTemp("", "prgavi-whisperx-*")
		if err != nil {
			return nil, fmt.Errorf("create whisperx output dir: %w", err)
		}
		defer os.RemoveAll(dir)
		outDir = dir
	}

	cmd := exec.CommandContext(ctx, w.binary(), w.args(audioPath, outDir)...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("whisperx stderr: %w", err)
	}
	cmd.Stdout = io.Discard

	slog.Info("transcribing with whisperx", "file", filepath.Base(audioPath), "model", w.Model)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start whisperx: %w", err)
	}

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		slog.Debug("whisperx", "line", scanner.Text())
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("transcribing with whisperx: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	words, err := DecodeFile(filepath.Join(outDir, base+".json"))
	if err != nil {
		return nil, fmt.Errorf("whisperx result: %w", err)
	}
	return words, nil
}

func (w WhisperX) args(audioPath, outDir string) []string {
	args := []string{audioPath, "--output_format", "json", "--output_dir", outDir}
	if w.Model != "" {
		args = append(args, "--model", w.Model)
	}
	if w.Language != "" && strings.ToLower(w.Language) != "auto" {
		args = append(args, "--language", w.Language)
	}
	return args
}
