package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lshigami/vidcert/internal/model"
)

type textGeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f textGeneratorFunc) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func intPtr(v int) *int {
	return &v
}

// fiveQuestions returns a quiz whose correct answers are 0,1,2,3,0.
func fiveQuestions() []model.QuizQuestion {
	qs := make([]model.QuizQuestion, 5)
	for i := range qs {
		qs[i] = model.QuizQuestion{
			Question:           fmt.Sprintf("Question %d?", i+1),
			Options:            []string{"A", "B", "C", "D"},
			CorrectAnswerIndex: i % 4,
		}
	}
	return qs
}

func questionsJSON(qs []model.QuizQuestion) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = fmt.Sprintf(`{"question":%q,"options":["%s"],"correctAnswerIndex":%d}`,
			q.Question, strings.Join(q.Options, `","`), q.CorrectAnswerIndex)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
