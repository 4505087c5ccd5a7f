package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/vidcert/config"
	"github.com/lshigami/vidcert/internal/model"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	resp openai.ChatCompletionResponse
	err  error
	req  openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	return f.resp, f.err
}

func toolCallResponse(name, args string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				ToolCalls: []openai.ToolCall{{
					Type:     openai.ToolTypeFunction,
					Function: openai.FunctionCall{Name: name, Arguments: args},
				}},
			},
		}},
	}
}

func TestOpenAILLMService_GenerateJSON(t *testing.T) {
	t.Parallel()

	t.Run("unwraps questions array", func(t *testing.T) {
		t.Parallel()
		args := `{"questions":` + questionsJSON(fiveQuestions()) + `}`
		chat := &fakeChat{resp: toolCallResponse(submitQuestionsTool, args)}
		svc := &openAILLMService{client: chat, model: "gpt-4o"}

		raw, err := svc.GenerateJSON(context.Background(), "prompt text")
		require.NoError(t, err)

		var qs []model.QuizQuestion
		require.NoError(t, json.Unmarshal([]byte(raw), &qs))
		assert.Equal(t, fiveQuestions(), qs)

		assert.Equal(t, "gpt-4o", chat.req.Model)
		assert.Equal(t, submitQuestionsTool, chat.req.ToolChoice.(openai.ToolChoice).Function.Name)
		assert.Equal(t, "prompt text", chat.req.Messages[1].Content)
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		cases := map[string]*fakeChat{
			"api error":      {err: errors.New("rate limited")},
			"no choices":     {resp: openai.ChatCompletionResponse{}},
			"no tool call":   {resp: openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{}}}},
			"wrong tool":     {resp: toolCallResponse("other_tool", `{}`)},
			"bad arguments":  {resp: toolCallResponse(submitQuestionsTool, `{not json`)},
			"empty question": {resp: toolCallResponse(submitQuestionsTool, `{}`)},
		}
		for name, chat := range cases {
			svc := &openAILLMService{client: chat, model: "gpt-4o"}
			_, err := svc.GenerateJSON(context.Background(), "p")
			assert.Error(t, err, name)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{}
		cfg.AI.OpenAIModel = "gpt-4o"
		_, err := NewOpenAILLMService(cfg).GenerateJSON(context.Background(), "p")
		assert.Error(t, err)
	})
}

func TestGeminiLLMService_MissingKey(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.AI.GeminiModel = "gemini-2.5-flash"
	gen, err := NewGeminiLLMService(cfg)
	require.NoError(t, err)

	_, err = gen.GenerateJSON(context.Background(), "p")
	assert.ErrorIs(t, err, errGeminiKeyMissing)
}

func TestQuizResponseSchema(t *testing.T) {
	t.Parallel()

	s := quizResponseSchema()
	assert.Equal(t, genai.TypeArray, s.Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, genai.TypeObject, s.Items.Type)
	assert.ElementsMatch(t, []string{"question", "options", "correctAnswerIndex"}, s.Items.Required)
	assert.Equal(t, genai.TypeInteger, s.Items.Properties["correctAnswerIndex"].Type)
	assert.Equal(t, genai.TypeString, s.Items.Properties["options"].Items.Type)
}

func TestNewTextGenerator(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.AI.Provider = "openai"
	gen, err := NewTextGenerator(cfg)
	require.NoError(t, err)
	assert.IsType(t, &openAILLMService{}, gen)

	cfg.AI.Provider = "gemini"
	gen, err = NewTextGenerator(cfg)
	require.NoError(t, err)
	assert.IsType(t, &geminiLLMService{}, gen)

	cfg.AI.Provider = "llama"
	_, err = NewTextGenerator(cfg)
	assert.Error(t, err)
}
