// Package extract isolates how a JSON payload is located inside a raw model
// response. Chat models asked for JSON often wrap it in prose or code
// fences; the historical contract is to take everything between the first
// '{' and the last '}'. That brittle mode lives behind an interface so a
// strict structured-output mode can replace it without touching callers.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when no JSON object can be located in the response.
var ErrNoJSON = errors.New("could not find JSON object in response")

// Extractor locates the JSON object inside a raw response body and
// unmarshals it into v.
type Extractor interface {
	Extract(raw string, v any) error
}

// Brace extracts the substring between the first '{' and the last '}' and
// parses it as JSON. This tolerates leading prose and markdown fences but
// silently accepts garbage between valid braces; it exists for
// compatibility with models that ignore response-format instructions.
type Brace struct{}

// Extract implements Extractor.
func (Brace) Extract(raw string, v any) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ErrNoJSON
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), v); err != nil {
		return fmt.Errorf("failed to parse extracted JSON: %w", err)
	}
	return nil
}

// Strict requires the whole response body (modulo surrounding whitespace)
// to be a single JSON value. Use with endpoints that guarantee structured
// output.
type Strict struct{}

// Extract implements Extractor.
func (Strict) Extract(raw string, v any) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ErrNoJSON
	}

	if err := json.Unmarshal([]byte(trimmed), v); err != nil {
		return fmt.Errorf("response is not strict JSON: %w", err)
	}
	return nil
}
