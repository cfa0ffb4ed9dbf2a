package diarize

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
	"time"
)

// PyannoteConfig configures the diarization HTTP engine
type PyannoteConfig struct {
	APIURL    string
	AuthToken string
	Model     string
	Timeout   time.Duration
}

// PyannoteEngine calls a pyannote-style diarization inference endpoint
// authenticated with a HuggingFace token.
type PyannoteEngine struct {
	client *http.Client
	config PyannoteConfig
}

// NewPyannoteEngine creates a new diarization HTTP engine
func NewPyannoteEngine(config PyannoteConfig) (*PyannoteEngine, error) {
	if config.APIURL == "" {
		return nil, fmt.Errorf("diarization API URL is required")
	}
	if config.AuthToken == "" {
		return nil, fmt.Errorf("diarization auth token is required")
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Minute
	}

	return &PyannoteEngine{
		client: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  true,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		config: config,
	}, nil
}

// diarizationResponse is the engine's wire shape
type diarizationResponse struct {
	Segments []struct {
		Start   float64 `json:"start"`
		End     float64 `json:"end"`
		Speaker string  `json:"speaker"`
	} `json:"segments"`
}

// Diarize uploads the audio file and returns the speaker turns in the
// engine's native order.
func (e *PyannoteEngine) Diarize(ctx context.Context, audioPath string) ([]Turn, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if e.config.Model != "" {
		if err := mw.WriteField("model", e.config.Model); err != nil {
			return nil, fmt.Errorf("failed to write model field: %w", err)
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
	req.Header.Set("Authorization", "Bearer "+e.config.AuthToken)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diarization request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("diarization endpoint returned status %d: %s", resp.StatusCode, string(b))
	}

	var dr diarizationResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("failed to decode diarization response: %w", err)
	}

	turns := make([]Turn, 0, len(dr.Segments))
	for _, s := range dr.Segments {
		turns = append(turns, Turn{Start: s.Start, End: s.End, Speaker: s.Speaker})
	}
	return turns, nil
}
