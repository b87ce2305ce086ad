package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/FlorentLa/obsidian-whisper/internal/logger"
	"google.golang.org/genai"
)

// GeminiCompleter calls Gemini and rotates through API keys when one is
// rate limited.
type GeminiCompleter struct {
	apiKeys     []string
	model       string
	temperature float32
	logger      logger.Logger

	mu         sync.Mutex
	currentKey int

	call func(ctx context.Context, apiKey, prompt string) (string, error)
}

func NewGeminiCompleter(apiKeys []string, model string, temperature float32, log logger.Logger) *GeminiCompleter {
	g := &GeminiCompleter{
		apiKeys:     apiKeys,
		model:       model,
		temperature: temperature,
		logger:      log,
	}
	g.call = g.generateContent
	return g
}

// Complete tries each key at most once, starting with the last one that worked.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("gemini: no API keys configured")
	}

	var lastErr error
	for range len(g.apiKeys) {
		key, idx := g.key()

		text, err := g.call(ctx, key, prompt)
		if err == nil {
			return text, nil
		}
		if !isRateLimited(err) {
			return "", err
		}

		g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		g.rotateKey()
		lastErr = err
	}

	return "", fmt.Errorf("%w: %w", ErrKeysExhausted, lastErr)
}

func (g *GeminiCompleter) generateContent(ctx context.Context, apiKey, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var b strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			b.WriteString(part.Text)
		}
		return b.String(), nil
	}

	return "", ErrEmptyResponse
}

func (g *GeminiCompleter) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *GeminiCompleter) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
