package dto

import "time"

type GenerateQuizRequest struct {
	VideoURL string `json:"video_url" form:"video_url"`
}

// QuizQuestionResponse omits the correct answer index.
type QuizQuestionResponse struct {
	Index    int      `json:"index"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuizResponse struct {
	ID          string                 `json:"id"`
	VideoURL    string                 `json:"video_url"`
	Topic       string                 `json:"topic"`
	ChannelName string                 `json:"channel_name,omitempty"`
	Questions   []QuizQuestionResponse `json:"questions"`
	CreatedAt   time.Time              `json:"created_at"`
}

// SubmitQuizRequest holds one entry per question; null means no answer.
type SubmitQuizRequest struct {
	Answers []*int `json:"answers" binding:"required"`
}

type QuizResultResponse struct {
	CorrectAnswers   int                  `json:"correct_answers"`
	TotalQuestions   int                  `json:"total_questions"`
	ScorePercentage  int                  `json:"score_percentage"`
	Passed           bool                 `json:"passed"`
	PassingScore     int                  `json:"passing_score"`
	Certificate      *CertificateResponse `json:"certificate"`
	CertificateError string               `json:"certificate_error,omitempty"`
}
