package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/vidcert/internal/client"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/rs/zerolog/log"
)

type TranscriptController struct {
	transcripts client.TranscriptFetcher
}

func NewTranscriptController(transcripts client.TranscriptFetcher) *TranscriptController {
	return &TranscriptController{transcripts: transcripts}
}

// GetTranscript godoc
// @Summary Fetch a video transcript
// @Description Returns the caption text of a video as one line.
// @Tags Transcript
// @Produce json
// @Param url query string true "Video URL"
// @Success 200 {object} dto.TranscriptResponse
// @Failure 400 {object} dto.TranscriptErrorResponse "Missing video URL"
// @Failure 500 {object} dto.TranscriptErrorResponse "Captions could not be fetched"
// @Router /transcript [get]
func (c *TranscriptController) GetTranscript(ctx *gin.Context) {
	videoURL := strings.TrimSpace(ctx.Query("url"))
	if videoURL == "" {
		ctx.JSON(http.StatusBadRequest, dto.TranscriptErrorResponse{Error: "Missing video URL"})
		return
	}

	transcript, err := c.transcripts.FetchTranscript(ctx.Request.Context(), videoURL)
	if err != nil {
		log.Warn().Err(err).Str("url", videoURL).Msg("Transcript endpoint: fetch failed")
		ctx.JSON(http.StatusInternalServerError, dto.TranscriptErrorResponse{Error: "Could not fetch transcript. Captions might be disabled."})
		return
	}
	ctx.JSON(http.StatusOK, dto.TranscriptResponse{Transcript: transcript})
}
