package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.elevenlabs.io"
	DefaultModelID = "scribe_v1"
	sttPath        = "/v1/speech-to-text"
	uploadTimeout  = 30 * time.Minute
)

// ProgressFunc is called with (bytesRead, totalBytes) during upload.
type ProgressFunc func(bytesRead, totalBytes int64)

// Client talks to the ElevenLabs speech-to-text endpoint.
type Client struct {
	APIKey  string
	BaseURL string
	ModelID string
	HTTP    *http.Client
}

// NewClient creates a client with the default endpoint and model.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		ModelID: DefaultModelID,
		HTTP:    &http.Client{Timeout: uploadTimeout},
	}
}

type progressReader struct {
	reader   io.Reader
	total    int64
	read     int64
	callback ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.read += int64(n)
	if pr.callback != nil {
		pr.callback(pr.read, pr.total)
	}
	return n, err
}

func mimeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".mp3":
		return "audio/mp3"
	case ".m4a":
		return "audio/m4a"
	case ".wav":
		return "audio/wav"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	case ".aac":
		return "audio/aac"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/mov"
	default:
		return "application/octet-stream"
	}
}

// Transcribe uploads an audio file and returns the word-level transcript.
func (c *Client) Transcribe(ctx context.Context, filePath, languageCode string, progress ProgressFunc) (*TranscriptResponse, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("ElevenLabs API key not set")
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		err := c.writeForm(mw, f, filePath, languageCode)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
		errCh <- err
	}()

	// File size plus ~1KB of form overhead.
	body := &progressReader{
		reader:   pr,
		total:    stat.Size() + 1024,
		callback: progress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+sttPath, body)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("xi-api-key", c.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	slog.Info("uploading to ElevenLabs", "file", filepath.Base(filePath), "model", c.modelID())

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: uploadTimeout}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		pr.Close()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if writeErr := <-errCh; writeErr != nil {
		return nil, fmt.Errorf("multipart write error: %w", writeErr)
	}

	var transcript TranscriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&transcript); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &transcript, nil
}

func (c *Client) writeForm(mw *multipart.Writer, f io.Reader, filePath, languageCode string) error {
	if err := mw.WriteField("model_id", c.modelID()); err != nil {
		return err
	}
	if err := mw.WriteField("timestamps_granularity", "word"); err != nil {
		return err
	}
	if err := mw.WriteField("tag_audio_events", "false"); err != nil {
		return err
	}
	if languageCode != "" && strings.ToLower(languageCode) != "auto" {
		if err := mw.WriteField("language_code", languageCode); err != nil {
			return err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(filePath)))
	h.Set("Content-Type", mimeFromExt(filepath.Ext(filePath)))
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Client) modelID() string {
	if c.ModelID == "" {
		return DefaultModelID
	}
	return c.ModelID
}
