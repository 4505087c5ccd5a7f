package model

import "time"

type QuizQuestion struct {
	Question           string   `json:"question" validate:"required"`
	Options            []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" validate:"min=0,max=3"`
}

// Quiz lives only in the quiz session store until it is submitted.
type Quiz struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id"`
	VideoURL    string         `json:"video_url"`
	Topic       string         `json:"topic"`
	ChannelName string         `json:"channel_name,omitempty"`
	Questions   []QuizQuestion `json:"questions"`
	CreatedAt   time.Time      `json:"created_at"`
}
