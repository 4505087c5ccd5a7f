package model

import (
	"time"

	"gorm.io/datatypes"
)

// NoAnswer marks a question the user left unanswered in UserAnswers.
const NoAnswer = -1

// Certificate is immutable once issued, so it carries no UpdatedAt or DeletedAt.
type Certificate struct {
	ID          string                            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string                            `gorm:"type:varchar(64);not null;index" json:"user_id"`
	UserName    string                            `gorm:"not null" json:"user_name"`
	VideoURL    string                            `gorm:"type:text;not null" json:"video_url"`
	Topic       string                            `gorm:"type:text;not null" json:"topic"`
	ChannelName *string                           `json:"channel_name,omitempty"`
	Questions   datatypes.JSONSlice[QuizQuestion] `json:"questions,omitempty"`
	UserAnswers datatypes.JSONSlice[int]          `json:"user_answers,omitempty"`
	Score       int                               `gorm:"not null" json:"score"`
	IssuedAt    time.Time                         `gorm:"not null;index" json:"issued_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// HasReview reports whether the certificate carries a question/answer snapshot.
func (c *Certificate) HasReview() bool {
	return len(c.Questions) > 0 && len(c.Questions) == len(c.UserAnswers)
}
