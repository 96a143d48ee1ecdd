package transcribe

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lukechampine.com/blake3"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

// Cache stores transcriptions by key. Cached derives keys from the audio
// content hash, the engine and the language.
type Cache interface {
	Get(ctx context.Context, hash string) ([]captions.Word, bool, error)
	Put(ctx context.Context, hash, engine string, words []captions.Word) error
}

// Cached wraps a transcriber so identical audio is transcribed once per
// engine and language.
type Cached struct {
	Next     Transcriber
	Cache    Cache
	Engine   string
	Language string
}

var _ Transcriber = Cached{}

// Transcribe implements Transcriber. Cache failures are logged and bypassed.
func (c Cached) Transcribe(ctx context.Context, audioPath string) ([]captions.Word, error) {
	hash, err := HashFile(audioPath)
	if err != nil {
		return nil, err
	}
	key := c.key(hash)

	words, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		slog.Warn("transcript cache lookup failed", "err", err)
	} else if ok {
		slog.Info("using cached transcription", "file", filepath.Base(audioPath), "words", len(words))
		return words, nil
	}

	words, err = c.Next.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	if len(words) > 0 {
		if err := c.Cache.Put(ctx, key, c.Engine, words); err != nil {
			slog.Warn("transcript cache store failed", "err", err)
		}
	}
	return words, nil
}

// key scopes the audio hash to the engine and language that produced the
// transcription.
func (c Cached) key(hash string) string {
	return hash + ":" + c.Engine + ":" + strings.ToLower(c.Language)
}

// HashFile returns the hex blake3 digest of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio for hashing: %w", err)
	}
	defer f.Close()
	return Hash(f)
}

// Hash returns the hex blake3 digest of r.
func Hash(r io.Reader) (string, error) {
	h := blake3.New(32, nil)
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("calculating blake3 hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
