// Package mistral implements the generation contracts against a
// Mistral-compatible chat completion endpoint. One client serves
// translation, grammar exercise generation and reading passage generation;
// all three are single request/response calls with JSON-object output
// requested from the model.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/fskogh/lingai/internal/config"
	"github.com/fskogh/lingai/internal/generation"
	"github.com/fskogh/lingai/internal/generation/extract"
)

// Client calls a chat completion endpoint and parses the JSON payloads the
// prompts ask for. It implements generation.Translator,
// generation.ExerciseGenerator and generation.PassageGenerator.
type Client struct {
	logger     *slog.Logger
	cfg        config.LLMConfig
	httpClient *http.Client
	extractor  extract.Extractor
}

// NewClient creates a Client from the given configuration. The extractor
// decides how strictly responses are parsed; pass extract.Brace{} for
// compatibility with models that wrap their JSON in prose.
func NewClient(logger *slog.Logger, cfg config.LLMConfig, extractor extract.Extractor) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if extractor == nil {
		extractor = extract.Brace{}
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		logger:     logger,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		extractor:  extractor,
	}, nil
}

// Wire types for the chat completion endpoint.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// chat sends one prompt and returns the raw message content of the first
// choice. Transient failures (transport errors, 5xx, 429) are retried with
// exponential backoff and jitter up to the configured maximum.
func (c *Client) chat(ctx context.Context, prompt string) (string, error) {
	maxRetries := c.cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelay := c.cfg.RetryDelaySeconds
	if baseDelay < 1 {
		baseDelay = 2
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		content, transient, err := c.chatOnce(ctx, prompt)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if !transient || attempt == maxRetries {
			return "", err
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoff := float64(baseDelay) * math.Pow(2, float64(attempt))
		jitter := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoff * jitter * float64(time.Second))

		c.logger.WarnContext(ctx, "chat completion failed, retrying",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1,
			"delay", delay,
			"error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrNetwork, ctx.Err())
		}
	}

	return "", lastErr
}

// chatOnce performs a single request. The second return value reports
// whether the failure is worth retrying.
func (c *Client) chatOnce(ctx context.Context, prompt string) (string, bool, error) {
	reqBody := chatRequest{
		Model:          c.cfg.Model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", generation.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("%w: reading response: %v", generation.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		transient := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return "", transient, fmt.Errorf("%w: unexpected status %d", generation.ErrNetwork, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	if len(parsed.Choices) == 0 {
		return "", false, fmt.Errorf("%w: no choices in response", generation.ErrInvalidResponse)
	}

	return parsed.Choices[0].Message.Content, false, nil
}

// Translate implements generation.Translator.
func (c *Client) Translate(ctx context.Context, phrase string, fromGerman bool) (*generation.Translation, error) {
	if phrase == "" {
		return nil, fmt.Errorf("%w: empty phrase", generation.ErrGenerationFailed)
	}

	raw, err := c.chat(ctx, generation.TranslationPrompt(phrase, fromGerman))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Trans    string `json:"trans"`
		Etym     string `json:"etym"`
		Synonyms string `json:"synonyms"`
	}
	if err := c.extractor.Extract(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	if payload.Trans == "" {
		return nil, fmt.Errorf("%w: missing translation field", generation.ErrInvalidResponse)
	}

	return &generation.Translation{
		Translation: payload.Trans,
		Etymology:   payload.Etym,
		Synonyms:    payload.Synonyms,
	}, nil
}

// GenerateExercises implements generation.ExerciseGenerator.
func (c *Client) GenerateExercises(ctx context.Context, words []string, kind string, count int) ([]generation.GeneratedExercise, error) {
	if len(words) == 0 {
		return nil, generation.ErrEmptyVocabulary
	}

	raw, err := c.chat(ctx, generation.ExercisePrompt(words, kind, count))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Exercises []generation.GeneratedExercise `json:"exercises"`
	}
	if err := c.extractor.Extract(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	if len(payload.Exercises) == 0 {
		return nil, fmt.Errorf("%w: no exercises in response", generation.ErrInvalidResponse)
	}

	return payload.Exercises, nil
}

// GeneratePassage implements generation.PassageGenerator.
func (c *Client) GeneratePassage(ctx context.Context, vocabulary []string, customInstructions string) (*generation.GeneratedPassage, error) {
	if len(vocabulary) == 0 {
		return nil, generation.ErrEmptyVocabulary
	}

	raw, err := c.chat(ctx, generation.PassagePrompt(vocabulary, customInstructions))
	if err != nil {
		return nil, err
	}

	var payload generation.GeneratedPassage
	if err := c.extractor.Extract(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	if payload.Title == "" || payload.Body == "" {
		return nil, fmt.Errorf("%w: missing title or content", generation.ErrInvalidResponse)
	}

	return &payload, nil
}
