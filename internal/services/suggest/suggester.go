package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Suggester is the narrow title-suggestion collaborator: a single
// text-generation call per suggestion, no reconciliation logic.
type Suggester interface {
	Suggest(ctx context.Context, content string) ([]string, error)
}

// ClientConfig configures the text-generation HTTP client
type ClientConfig struct {
	APIURL  string
	APIKey  string
	Model   string
	Count   int
	Timeout time.Duration
}

// Client calls a hosted text2text-generation endpoint once per requested
// title. Sampling on the server side keeps the titles distinct.
type Client struct {
	client *http.Client
	config ClientConfig
}

// NewClient creates a new suggestion client
func NewClient(config ClientConfig) (*Client, error) {
	if config.APIURL == "" {
		return nil, fmt.Errorf("suggestion API URL is required")
	}
	if config.Count <= 0 {
		config.Count = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}

	return &Client{
		client: &http.Client{Timeout: config.Timeout},
		config: config,
	}, nil
}

type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	DoSample     bool    `json:"do_sample"`
	TopK         int     `json:"top_k"`
	TopP         float64 `json:"top_p"`
}

type generationResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// Suggest generates title candidates for the given content
func (c *Client) Suggest(ctx context.Context, content string) ([]string, error) {
	suggestions := make([]string, 0, c.config.Count)
	for i := 0; i < c.config.Count; i++ {
		title, err := c.generate(ctx, content)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, title)
	}
	return suggestions, nil
}

func (c *Client) generate(ctx context.Context, content string) (string, error) {
	payload, err := json.Marshal(generationRequest{
		Inputs: content,
		Parameters: generationParameters{
			MaxNewTokens: 20,
			DoSample:     true,
			TopK:         50,
			TopP:         0.95,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("generation endpoint returned status %d: %s", resp.StatusCode, string(b))
	}

	var gr generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if len(gr) == 0 {
		return "", fmt.Errorf("generation endpoint returned no candidates")
	}

	return strings.TrimSpace(gr[0].GeneratedText), nil
}
