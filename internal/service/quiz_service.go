package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/lshigami/vidcert/internal/model"
	"github.com/lshigami/vidcert/internal/repository"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -source=quiz_service.go -destination=mock/quiz_service_mock.go

const certificateSaveFailedMessage = "You passed, but your certificate could not be saved. Please submit again."

type QuizService interface {
	CreateQuiz(ctx context.Context, user model.User, videoURL string) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, user model.User, quizID string) (*dto.QuizResponse, error)
	SubmitQuiz(ctx context.Context, user model.User, quizID string, answers []*int) (*dto.QuizResultResponse, error)
}

type quizServiceImpl struct {
	generator QuizGeneratorService
	quizRepo  repository.QuizSessionRepository
	scoring   ScoringService
	certSvc   CertificateService
	now       func() time.Time
}

func NewQuizService(
	generator QuizGeneratorService,
	quizRepo repository.QuizSessionRepository,
	scoring ScoringService,
	certSvc CertificateService,
) QuizService {
	return &quizServiceImpl{
		generator: generator,
		quizRepo:  quizRepo,
		scoring:   scoring,
		certSvc:   certSvc,
		now:       time.Now,
	}
}

func (s *quizServiceImpl) CreateQuiz(ctx context.Context, user model.User, videoURL string) (*dto.QuizResponse, error) {
	generated, err := s.generator.Generate(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		ID:          uuid.NewString(),
		OwnerID:     user.ID,
		VideoURL:    videoURL,
		Topic:       generated.Topic,
		ChannelName: generated.ChannelName,
		Questions:   generated.Questions,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.quizRepo.Save(ctx, quiz); err != nil {
		log.Error().Err(err).Str("userID", user.ID).Msg("Failed to store generated quiz")
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	log.Info().Str("quizID", quiz.ID).Str("userID", user.ID).Int("questions", len(quiz.Questions)).Msg("Quiz created")
	resp := toQuizResponse(quiz)
	return &resp, nil
}

func (s *quizServiceImpl) GetQuiz(ctx context.Context, user model.User, quizID string) (*dto.QuizResponse, error) {
	quiz, err := s.loadOwnedQuiz(ctx, user, quizID)
	if err != nil {
		return nil, err
	}
	resp := toQuizResponse(quiz)
	return &resp, nil
}

// SubmitQuiz scores the answers and issues a certificate when the score
// passes. The quiz is claimed from the store before any certificate is issued,
// so concurrent submissions of one quiz produce a single outcome. If the
// certificate cannot be saved the result still reports a pass, carries
// CertificateError and puts the quiz back so the submission can be retried.
func (s *quizServiceImpl) SubmitQuiz(ctx context.Context, user model.User, quizID string, answers []*int) (*dto.QuizResultResponse, error) {
	quiz, err := s.loadOwnedQuiz(ctx, user, quizID)
	if err != nil {
		return nil, err
	}

	score, err := s.scoring.Score(quiz.Questions, answers)
	if err != nil {
		return nil, err
	}

	quiz, err = s.quizRepo.Take(ctx, quiz.ID)
	if errors.Is(err, repository.ErrQuizNotFound) {
		log.Warn().Str("quizID", quizID).Str("userID", user.ID).Msg("Quiz already claimed by another submission")
		return nil, ErrQuizNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("quizID", quizID).Msg("Failed to claim quiz")
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	result := &dto.QuizResultResponse{
		CorrectAnswers:  score.Correct,
		TotalQuestions:  score.Total,
		ScorePercentage: score.Percentage,
		Passed:          score.Passed(),
		PassingScore:    PassingScore,
	}
	log.Info().Str("quizID", quiz.ID).Str("userID", user.ID).Int("score", score.Percentage).Bool("passed", result.Passed).Msg("Quiz submitted")

	if result.Passed {
		cert, err := s.certSvc.Issue(ctx, user, quiz, recordedAnswers(answers), score.Percentage)
		if err != nil {
			result.CertificateError = certificateSaveFailedMessage
			if err := s.quizRepo.Save(ctx, quiz); err != nil {
				log.Error().Err(err).Str("quizID", quiz.ID).Msg("Failed to restore quiz after certificate save failure")
			}
			return result, nil
		}
		result.Certificate = cert
	}
	return result, nil
}

func (s *quizServiceImpl) loadOwnedQuiz(ctx context.Context, user model.User, quizID string) (*model.Quiz, error) {
	quiz, err := s.quizRepo.Find(ctx, quizID)
	if errors.Is(err, repository.ErrQuizNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("quizID", quizID).Msg("Failed to load quiz")
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if quiz.OwnerID != user.ID {
		log.Warn().Str("quizID", quizID).Str("userID", user.ID).Msg("Quiz requested by non-owner")
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func toQuizResponse(quiz *model.Quiz) dto.QuizResponse {
	questions := make([]dto.QuizQuestionResponse, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = dto.QuizQuestionResponse{Index: i, Question: q.Question, Options: q.Options}
	}
	return dto.QuizResponse{
		ID:          quiz.ID,
		VideoURL:    quiz.VideoURL,
		Topic:       quiz.Topic,
		ChannelName: quiz.ChannelName,
		Questions:   questions,
		CreatedAt:   quiz.CreatedAt,
	}
}
