package dto

import "time"

type CertificateResponse struct {
	ID          string    `json:"id"`
	UserName    string    `json:"user_name"`
	VideoURL    string    `json:"video_url"`
	Topic       string    `json:"topic"`
	ChannelName string    `json:"channel_name,omitempty"`
	Score       int       `json:"score"`
	IssuedAt    time.Time `json:"issued_at"`
}

type ReviewItem struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	UserAnswerIndex    int      `json:"user_answer_index"`
	Correct            bool     `json:"correct"`
}

type CertificateDetailResponse struct {
	CertificateResponse
	Review []ReviewItem `json:"review,omitempty"`
}

// VerifyResponse.Status is one of found, not_found or unavailable.
type VerifyResponse struct {
	Status      string                     `json:"status"`
	Message     string                     `json:"message,omitempty"`
	Certificate *CertificateDetailResponse `json:"certificate,omitempty"`
}
