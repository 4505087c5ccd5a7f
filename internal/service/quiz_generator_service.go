package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lshigami/vidcert/internal/client"
	"github.com/lshigami/vidcert/internal/model"
	"github.com/rs/zerolog/log"
)

type GeneratedQuiz struct {
	Topic       string
	ChannelName string
	Questions   []model.QuizQuestion
	Source      PromptKind
}

type QuizGeneratorService interface {
	Generate(ctx context.Context, videoURL string) (*GeneratedQuiz, error)
}

type quizGeneratorServiceImpl struct {
	transcripts client.TranscriptFetcher
	metadata    client.MetadataFetcher
	generator   TextGenerator
	timeout     time.Duration
	validate    *validator.Validate
}

func NewQuizGeneratorService(
	transcripts client.TranscriptFetcher,
	metadata client.MetadataFetcher,
	generator TextGenerator,
	timeout time.Duration,
) QuizGeneratorService {
	return &quizGeneratorServiceImpl{
		transcripts: transcripts,
		metadata:    metadata,
		generator:   generator,
		timeout:     timeout,
		validate:    validator.New(),
	}
}

// Generate degrades to metadata when no usable transcript exists and to an
// empty title and channel when metadata is unavailable. Any problem with the
// model call or its output fails the whole generation with ErrGenerationFailed.
func (s *quizGeneratorServiceImpl) Generate(ctx context.Context, videoURL string) (*GeneratedQuiz, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return nil, newValidationError("video URL is required")
	}

	transcript, err := s.transcripts.FetchTranscript(ctx, videoURL)
	if err != nil {
		log.Warn().Err(err).Str("videoURL", videoURL).Msg("Transcript fetch failed, falling back to title")
		transcript = ""
	}

	meta, err := s.metadata.FetchMetadata(ctx, videoURL)
	if err != nil {
		log.Warn().Err(err).Str("videoURL", videoURL).Msg("Failed to fetch video metadata")
		meta = client.VideoMetadata{}
	}

	source := NewPromptSource(videoURL, transcript, meta.Title)
	log.Info().Str("videoURL", videoURL).Stringer("source", source.Kind).Int("transcriptRunes", len([]rune(source.Transcript))).Msg("Generating quiz")

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.GenerateJSON(genCtx, source.Prompt())
	if err != nil {
		log.Error().Err(err).Str("videoURL", videoURL).Msg("Quiz generation call failed")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	questions, err := s.parseQuestions(raw)
	if err != nil {
		log.Error().Err(err).Str("rawResponse", truncateForLog(raw)).Msg("Failed to parse quiz from model response")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(questions) != QuestionCount {
		log.Warn().Int("got", len(questions)).Int("want", QuestionCount).Msg("Model returned an unexpected number of questions")
	}

	topic := strings.TrimSpace(meta.Title)
	if topic == "" {
		topic = DefaultTopic
	}
	return &GeneratedQuiz{
		Topic:       topic,
		ChannelName: strings.TrimSpace(meta.ChannelName),
		Questions:   questions,
		Source:      source.Kind,
	}, nil
}

type rawQuestion struct {
	Question           string   `json:"question" validate:"required"`
	Options            []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex" validate:"required,min=0,max=3"`
}

func (s *quizGeneratorServiceImpl) parseQuestions(raw string) ([]model.QuizQuestion, error) {
	raw = stripCodeFence(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty response")
	}

	var parsed []rawQuestion
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("response contains no questions")
	}

	questions := make([]model.QuizQuestion, 0, len(parsed))
	for i, q := range parsed {
		if err := s.validate.Struct(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, model.QuizQuestion{
			Question:           strings.TrimSpace(q.Question),
			Options:            q.Options,
			CorrectAnswerIndex: *q.CorrectAnswerIndex,
		})
	}
	return questions, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add even in
// JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncateForLog(s string) string {
	const max = 500
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
