// Package speech implements the speech synthesis contract against an HTTP
// text-to-speech endpoint: passage text in, raw audio bytes out.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fskogh/lingai/internal/config"
	"github.com/fskogh/lingai/internal/generation"
)

// Client implements generation.SpeechSynthesizer.
type Client struct {
	logger     *slog.Logger
	cfg        config.SpeechConfig
	httpClient *http.Client
}

// NewClient creates a synthesis client from the given configuration.
func NewClient(logger *slog.Logger, cfg config.SpeechConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: speech API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: speech base URL cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.Voice == "" {
		return nil, fmt.Errorf("%w: voice cannot be empty", generation.ErrInvalidConfig)
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		logger:     logger,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type synthesisRequest struct {
	Input        string `json:"input"`
	Voice        string `json:"voice"`
	Instructions string `json:"instructions,omitempty"`
}

// Synthesize converts text to audio bytes with the configured voice and
// style instructions.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", generation.ErrGenerationFailed)
	}

	payload, err := json.Marshal(synthesisRequest{
		Input:        text,
		Voice:        c.cfg.Voice,
		Instructions: c.cfg.StyleInstructions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/audio/speech", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", generation.ErrNetwork, resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading audio: %v", generation.ErrNetwork, err)
	}

	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: empty audio body", generation.ErrInvalidResponse)
	}

	c.logger.DebugContext(ctx, "speech synthesis complete",
		"text_length", len(text),
		"audio_bytes", len(audio))

	return audio, nil
}
