package service

import (
	"fmt"
	"math"

	"github.com/lshigami/vidcert/internal/model"
)

// PassingScore is the minimum percentage that earns a certificate.
const PassingScore = 80

type ScoreResult struct {
	Correct    int
	Total      int
	Percentage int
}

// Passed reports whether the result meets PassingScore.
func (r ScoreResult) Passed() bool {
	return r.Percentage >= PassingScore
}

type ScoringService interface {
	Score(questions []model.QuizQuestion, answers []*int) (ScoreResult, error)
}

type scoringServiceImpl struct{}

func NewScoringService() ScoringService {
	return &scoringServiceImpl{}
}

// Score counts exact matches only. A nil answer is "no answer" and is simply
// wrong; there is no partial credit and no negative marking.
func (s *scoringServiceImpl) Score(questions []model.QuizQuestion, answers []*int) (ScoreResult, error) {
	if len(questions) == 0 {
		return ScoreResult{}, ErrEmptyQuiz
	}
	if len(answers) != len(questions) {
		return ScoreResult{}, newValidationError(fmt.Sprintf("expected %d answers, got %d", len(questions), len(answers)))
	}

	correct := 0
	for i, q := range questions {
		a := answers[i]
		if a == nil {
			continue
		}
		if *a < 0 || *a >= len(q.Options) {
			return ScoreResult{}, newValidationError(fmt.Sprintf("answer %d is out of range for question %d", *a, i+1))
		}
		if *a == q.CorrectAnswerIndex {
			correct++
		}
	}

	return ScoreResult{
		Correct:    correct,
		Total:      len(questions),
		Percentage: percentage(correct, len(questions)),
	}, nil
}

func percentage(correct, total int) int {
	return int(math.Round(float64(correct*100) / float64(total)))
}

// recordedAnswers flattens submitted answers for the certificate snapshot.
func recordedAnswers(answers []*int) []int {
	out := make([]int, len(answers))
	for i, a := range answers {
		if a == nil {
			out[i] = model.NoAnswer
			continue
		}
		out[i] = *a
	}
	return out
}
