package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/lshigami/vidcert/internal/identity"
	"github.com/lshigami/vidcert/internal/model"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go

const MinPasswordLength = 6

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	CurrentUser(ctx context.Context, accessToken string) (*model.User, error)
	Logout(ctx context.Context, accessToken string) error
}

type authServiceImpl struct {
	provider identity.Provider
	validate *validator.Validate
}

func NewAuthService(provider identity.Provider) AuthService {
	return &authServiceImpl{provider: provider, validate: validator.New()}
}

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" {
		return nil, newValidationError("username is required")
	}
	if err := s.checkEmail(email); err != nil {
		return nil, err
	}
	if len(req.Password) < MinPasswordLength {
		return nil, newValidationError("password must be at least 6 characters")
	}

	res, err := s.provider.Register(ctx, username, email, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Registration failed")
		return nil, err
	}
	log.Info().Str("userID", res.User.ID).Bool("pendingVerification", res.PendingVerification).Msg("User registered")
	return toAuthResponse(res), nil
}

func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if err := s.checkEmail(email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, newValidationError("password is required")
	}

	res, err := s.provider.Login(ctx, email, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Login failed")
		return nil, err
	}
	return toAuthResponse(res), nil
}

func (s *authServiceImpl) CurrentUser(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, identity.ErrUnauthorized
	}
	return s.provider.Session(ctx, accessToken)
}

func (s *authServiceImpl) Logout(ctx context.Context, accessToken string) error {
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		log.Warn().Err(err).Msg("Sign-out at identity provider failed")
		return err
	}
	return nil
}

func (s *authServiceImpl) checkEmail(email string) error {
	if email == "" {
		return newValidationError("email is required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return newValidationError("email address is invalid")
	}
	return nil
}

func toAuthResponse(res *identity.AuthResult) *dto.AuthResponse {
	return &dto.AuthResponse{
		User: dto.UserResponse{
			ID:        res.User.ID,
			Username:  res.User.Username,
			Email:     res.User.Email,
			CreatedAt: res.User.CreatedAt,
		},
		AccessToken:         res.AccessToken,
		PendingVerification: res.PendingVerification,
	}
}
