package dto

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// TranscriptErrorResponse keeps the transcript endpoint's historical `{error}` shape.
type TranscriptErrorResponse struct {
	Error string `json:"error"`
}

type TranscriptResponse struct {
	Transcript string `json:"transcript"`
}
