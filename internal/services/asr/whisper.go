package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// WhisperConfig configures the whisper-compatible HTTP engine
type WhisperConfig struct {
	APIKey      string
	APIURL      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// WhisperEngine transcribes audio through an OpenAI-compatible
// /audio/transcriptions endpoint using verbose_json output for segment
// timestamps.
type WhisperEngine struct {
	client *http.Client
	config WhisperConfig
}

// NewWhisperEngine creates a new whisper HTTP engine
func NewWhisperEngine(config WhisperConfig) (*WhisperEngine, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("whisper API key is required")
	}
	if config.APIURL == "" {
		return nil, fmt.Errorf("whisper API URL is required")
	}
	if config.Model == "" {
		config.Model = "whisper-1"
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Minute
	}

	return &WhisperEngine{
		client: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  true, // audio payloads don't compress
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		config: config,
	}, nil
}

// verboseTranscription mirrors the verbose_json response shape
type verboseTranscription struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe uploads the audio file and returns timestamped segments.
func (e *WhisperEngine) Transcribe(ctx context.Context, audioPath string, language string) (*Result, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := map[string]string{
		"model":           e.config.Model,
		"response_format": "verbose_json",
		"temperature":     strconv.FormatFloat(e.config.Temperature, 'f', -1, 64),
	}
	if language != "" {
		fields["language"] = language
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, fmt.Errorf("failed to copy audio into request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.APIURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.config.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("transcription endpoint returned status %d: %s", resp.StatusCode, string(b))
	}

	var vt verboseTranscription
	if err := json.NewDecoder(resp.Body).Decode(&vt); err != nil {
		return nil, fmt.Errorf("failed to decode transcription response: %w", err)
	}

	result := &Result{
		Text:     vt.Text,
		Language: vt.Language,
		Segments: make([]Segment, 0, len(vt.Segments)),
	}
	for _, s := range vt.Segments {
		result.Segments = append(result.Segments, Segment{
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}
	return result, nil
}
