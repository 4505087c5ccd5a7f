package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lshigami/vidcert/config"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const submitQuestionsTool = "submit_questions"

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type openAILLMService struct {
	client chatCompleter
	model  string
}

func NewOpenAILLMService(cfg *config.Config) TextGenerator {
	if cfg.AI.OpenAIApiKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set. Quiz generation will be non-functional.")
		return &openAILLMService{model: cfg.AI.OpenAIModel}
	}
	return &openAILLMService{
		client: openai.NewClient(cfg.AI.OpenAIApiKey),
		model:  cfg.AI.OpenAIModel,
	}
}

// GenerateJSON forces a submit_questions tool call and returns its questions
// array, so the output has the same shape as the Gemini response.
func (s *openAILLMService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", errors.New("OpenAI API key is missing. Please check your app configuration.")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert quiz question generator. Generate high-quality multiple choice questions with exactly 4 options each.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        submitQuestionsTool,
					Description: "Submit generated quiz questions",
					Parameters: map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"questions": map[string]interface{}{
								"type": "array",
								"items": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"question": map[string]interface{}{
											"type":        "string",
											"description": "The question text",
										},
										"options": map[string]interface{}{
											"type":        "array",
											"items":       map[string]interface{}{"type": "string"},
											"description": "Array of 4 multiple choice options",
										},
										"correctAnswerIndex": map[string]interface{}{
											"type":        "integer",
											"description": "0-based index of the correct answer",
										},
									},
									"required": []string{"question", "options", "correctAnswerIndex"},
								},
							},
						},
						"required": []string{"questions"},
					},
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: submitQuestionsTool},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("model", s.model).Msg("OpenAI API error during quiz generation")
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		return "", errors.New("no tool calls in response")
	}
	if calls[0].Function.Name != submitQuestionsTool {
		return "", fmt.Errorf("unexpected tool call: %s", calls[0].Function.Name)
	}

	var args struct {
		Questions json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(calls[0].Function.Arguments), &args); err != nil {
		return "", fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	if len(args.Questions) == 0 {
		return "", errors.New("tool arguments have no questions")
	}
	return string(args.Questions), nil
}
