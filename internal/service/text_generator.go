package service

import (
	"context"
	"fmt"

	"github.com/lshigami/vidcert/config"
)

// TextGenerator sends a prompt to a generative model configured for a JSON
// array of quiz questions and returns the raw response text.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

func NewTextGenerator(cfg *config.Config) (TextGenerator, error) {
	switch cfg.AI.Provider {
	case "openai":
		return NewOpenAILLMService(cfg), nil
	case "gemini", "":
		return NewGeminiLLMService(cfg)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AI.Provider)
	}
}
