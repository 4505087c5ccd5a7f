package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/vidcert/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var errGeminiKeyMissing = errors.New("Gemini API key is missing. Please check your app configuration.")

type geminiLLMService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (TextGenerator, error) {
	if cfg.AI.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Quiz generation will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.AI.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.AI.GeminiModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = quizResponseSchema()
	return &geminiLLMService{client: model, cfg: cfg}, nil
}

func quizResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {Type: genai.TypeString},
				"options": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"correctAnswerIndex": {Type: genai.TypeInteger},
			},
			Required: []string{"question", "options", "correctAnswerIndex"},
		},
	}
}

func (s *geminiLLMService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", errGeminiKeyMissing
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("model", s.cfg.AI.GeminiModel).Msg("Gemini API error during quiz generation")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", errors.New("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini returned no text content")
	}
	return sb.String(), nil
}
