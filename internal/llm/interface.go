// Package llm is the text-generation capability used by the summarizer:
// prompt templates are rendered here and sent to a completion backend one
// call at a time.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrEmptyResponse is returned when a backend answers without any text.
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrKeysExhausted is returned when every configured API key was rate limited.
	ErrKeysExhausted = errors.New("all API keys exhausted")
)

// Completer sends a fully rendered prompt to a model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator renders a prompt template with variables and generates text.
type Generator interface {
	Generate(ctx context.Context, template string, vars map[string]string) (string, error)
}
