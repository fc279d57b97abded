// Package gemini implements the generation contracts on Google's Gemini API
// with structured JSON output. Unlike the chat-completion backend it never
// needs brace extraction: the response MIME type pins the model to strict
// JSON, so the strict extractor applies.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fskogh/lingai/internal/config"
	"github.com/fskogh/lingai/internal/generation"
	"github.com/fskogh/lingai/internal/generation/extract"
	"google.golang.org/genai"
)

// Client implements generation.Translator, generation.ExerciseGenerator and
// generation.PassageGenerator using the Gemini API.
type Client struct {
	logger    *slog.Logger
	client    *genai.Client
	model     string
	extractor extract.Extractor
}

// NewClient creates a Gemini-backed generation client.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	model := cfg.GeminiModel
	if model == "" {
		return nil, fmt.Errorf("%w: gemini model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Client{
		logger:    logger,
		client:    client,
		model:     model,
		extractor: extract.Strict{},
	}, nil
}

// generate sends one prompt and returns the raw response text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrNetwork, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response", generation.ErrInvalidResponse)
	}

	c.logger.DebugContext(ctx, "gemini response received",
		"model", c.model,
		"response_length", len(text))

	return text, nil
}

// Translate implements generation.Translator.
func (c *Client) Translate(ctx context.Context, phrase string, fromGerman bool) (*generation.Translation, error) {
	if phrase == "" {
		return nil, fmt.Errorf("%w: empty phrase", generation.ErrGenerationFailed)
	}

	raw, err := c.generate(ctx, generation.TranslationPrompt(phrase, fromGerman))
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

	raw, err := c.generate(ctx, generation.ExercisePrompt(words, kind, count))
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

	raw, err := c.generate(ctx, generation.PassagePrompt(vocabulary, customInstructions))
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
