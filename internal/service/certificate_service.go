package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/lshigami/vidcert/internal/model"
	"github.com/lshigami/vidcert/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

//go:generate mockgen -source=certificate_service.go -destination=mock/certificate_service_mock.go

type VerificationStatus string

const (
	VerificationFound       VerificationStatus = "found"
	VerificationNotFound    VerificationStatus = "not_found"
	VerificationUnavailable VerificationStatus = "unavailable"
)

// VerificationResult keeps "no such certificate" apart from "could not look it
// up". Certificate is set only when Status is VerificationFound.
type VerificationResult struct {
	Status      VerificationStatus
	Certificate *dto.CertificateDetailResponse
}

type CertificateService interface {
	Issue(ctx context.Context, user model.User, quiz *model.Quiz, answers []int, score int) (*dto.CertificateResponse, error)
	ListForUser(ctx context.Context, userID string) ([]dto.CertificateResponse, error)
	GetForUser(ctx context.Context, id, userID string) (*dto.CertificateDetailResponse, error)
	Verify(ctx context.Context, id string) VerificationResult
}

type certificateServiceImpl struct {
	certRepo repository.CertificateRepository
	now      func() time.Time
}

func NewCertificateService(certRepo repository.CertificateRepository) CertificateService {
	return &certificateServiceImpl{certRepo: certRepo, now: time.Now}
}

func (s *certificateServiceImpl) Issue(ctx context.Context, user model.User, quiz *model.Quiz, answers []int, score int) (*dto.CertificateResponse, error) {
	if score < PassingScore {
		return nil, newValidationError(fmt.Sprintf("score %d%% is below the passing score of %d%%", score, PassingScore))
	}

	cert := &model.Certificate{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		UserName:    user.Username,
		VideoURL:    quiz.VideoURL,
		Topic:       quiz.Topic,
		Questions:   datatypes.NewJSONSlice(quiz.Questions),
		UserAnswers: datatypes.NewJSONSlice(answers),
		Score:       score,
		IssuedAt:    s.now().UTC(),
	}
	if quiz.ChannelName != "" {
		channel := quiz.ChannelName
		cert.ChannelName = &channel
	}

	if err := s.certRepo.Create(ctx, cert); err != nil {
		log.Error().Err(err).Str("userID", user.ID).Str("quizID", quiz.ID).Msg("Failed to save certificate")
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	log.Info().Str("certificateID", cert.ID).Str("userID", user.ID).Int("score", score).Msg("Certificate issued")

	resp := toCertificateResponse(cert)
	return &resp, nil
}

func (s *certificateServiceImpl) ListForUser(ctx context.Context, userID string) ([]dto.CertificateResponse, error) {
	certs, err := s.certRepo.FindAllByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to list certificates")
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	out := make([]dto.CertificateResponse, 0, len(certs))
	for i := range certs {
		out = append(out, toCertificateResponse(&certs[i]))
	}
	return out, nil
}

// GetForUser hides certificates owned by someone else behind
// ErrCertificateNotFound. Public lookups go through Verify.
func (s *certificateServiceImpl) GetForUser(ctx context.Context, id, userID string) (*dto.CertificateDetailResponse, error) {
	cert, err := s.certRepo.FindByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, repository.ErrCertificateNotFound) {
		return nil, ErrCertificateNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("certificateID", id).Msg("Failed to load certificate")
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if cert.UserID != userID {
		return nil, ErrCertificateNotFound
	}
	detail := toCertificateDetail(cert)
	return &detail, nil
}

func (s *certificateServiceImpl) Verify(ctx context.Context, id string) VerificationResult {
	id = strings.TrimSpace(id)
	if id == "" {
		return VerificationResult{Status: VerificationNotFound}
	}

	cert, err := s.certRepo.FindByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrCertificateNotFound):
		log.Info().Str("certificateID", id).Msg("Verification: no such certificate")
		return VerificationResult{Status: VerificationNotFound}
	case err != nil:
		log.Error().Err(err).Str("certificateID", id).Msg("Verification lookup failed")
		return VerificationResult{Status: VerificationUnavailable}
	}

	detail := toCertificateDetail(cert)
	return VerificationResult{Status: VerificationFound, Certificate: &detail}
}

func toCertificateResponse(cert *model.Certificate) dto.CertificateResponse {
	var resp dto.CertificateResponse
	if err := copier.Copy(&resp, cert); err != nil {
		log.Error().Err(err).Str("certificateID", cert.ID).Msg("Error copying certificate to DTO")
	}
	return resp
}

func toCertificateDetail(cert *model.Certificate) dto.CertificateDetailResponse {
	detail := dto.CertificateDetailResponse{CertificateResponse: toCertificateResponse(cert)}
	if !cert.HasReview() {
		return detail
	}
	detail.Review = make([]dto.ReviewItem, len(cert.Questions))
	for i, q := range cert.Questions {
		answer := cert.UserAnswers[i]
		detail.Review[i] = dto.ReviewItem{
			Question:           q.Question,
			Options:            q.Options,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
			UserAnswerIndex:    answer,
			Correct:            answer == q.CorrectAnswerIndex,
		}
	}
	return detail
}
