package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/lshigami/vidcert/config"
	mock_client "github.com/lshigami/vidcert/internal/client/mock"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/lshigami/vidcert/internal/identity"
	"github.com/lshigami/vidcert/internal/model"
	"github.com/lshigami/vidcert/internal/service"
	mock_service "github.com/lshigami/vidcert/internal/service/mock"
	"github.com/lshigami/vidcert/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "tok"

var (
	testUser = model.User{ID: "user-1", Username: "ada", Email: "ada@example.com"}
	issuedAt = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiMocks struct {
	auth        *mock_service.MockAuthService
	quizzes     *mock_service.MockQuizService
	certs       *mock_service.MockCertificateService
	transcripts *mock_client.MockTranscriptFetcher
}

func newTestRouter(ctrl *gomock.Controller, setupMock func(apiMocks)) *gin.Engine {
	m := apiMocks{
		auth:        mock_service.NewMockAuthService(ctrl),
		quizzes:     mock_service.NewMockQuizService(ctrl),
		certs:       mock_service.NewMockCertificateService(ctrl),
		transcripts: mock_client.NewMockTranscriptFetcher(ctrl),
	}
	m.auth.EXPECT().CurrentUser(gomock.Any(), testToken).DoAndReturn(
		func(context.Context, string) (*model.User, error) {
			u := testUser
			return &u, nil
		}).AnyTimes()
	if setupMock != nil {
		setupMock(m)
	}

	cfg := &config.Config{}
	cfg.Server.SessionSecret = "0123456789abcdef0123456789abcdef"
	sessions := session.NewManager(cfg, m.auth)

	r := gin.New()
	(&Routes{
		Sessions:     sessions,
		Auth:         NewAuthController(m.auth, sessions),
		Quizzes:      NewQuizController(m.quizzes),
		Certificates: NewCertificateController(m.certs),
		Transcript:   NewTranscriptController(m.transcripts),
	}).Register(r)
	return r
}

type apiCase struct {
	name       string
	method     string
	path       string
	body       string
	authed     bool
	f          func(apiMocks)
	wantStatus int
	wantJSON   string
	check      func(t *testing.T, body string)
}

func runCases(t *testing.T, tests []apiCase) {
	t.Helper()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			r := newTestRouter(ctrl, tt.f)
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			if tt.authed {
				req.Header.Set("Authorization", "Bearer "+testToken)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantJSON != "" {
				assert.JSONEq(t, tt.wantJSON, w.Body.String())
			}
			if tt.check != nil {
				tt.check(t, w.Body.String())
			}
		})
	}
}

func intPtr(v int) *int {
	return &v
}

func TestAuthController(t *testing.T) {
	t.Parallel()

	runCases(t, []apiCase{
		{
			name:   "register pending verification",
			method: http.MethodPost,
			path:   "/api/v1/auth/register",
			body:   `{"username":"ada","email":"ada@example.com","password":"secret1"}`,
			f: func(m apiMocks) {
				m.auth.EXPECT().Register(gomock.Any(), dto.RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "secret1"}).
					Return(&dto.AuthResponse{User: dto.UserResponse{ID: "user-1", Username: "ada", Email: "ada@example.com", CreatedAt: issuedAt}, PendingVerification: true}, nil)
			},
			wantStatus: http.StatusCreated,
			wantJSON:   `{"user":{"id":"user-1","username":"ada","email":"ada@example.com","created_at":"2025-06-01T09:30:00Z"},"pending_verification":true}`,
		},
		{
			name:       "register missing fields",
			method:     http.MethodPost,
			path:       "/api/v1/auth/register",
			body:       `{"email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "register rejected by provider",
			method: http.MethodPost,
			path:   "/api/v1/auth/register",
			body:   `{"username":"ada","email":"ada@example.com","password":"secret1"}`,
			f: func(m apiMocks) {
				m.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, &identity.ProviderError{Status: 422, Message: "User already registered"})
			},
			wantStatus: http.StatusBadRequest,
			wantJSON:   `{"message":"User already registered"}`,
		},
		{
			name:   "login",
			method: http.MethodPost,
			path:   "/api/v1/auth/login",
			body:   `{"email":"ada@example.com","password":"secret1"}`,
			f: func(m apiMocks) {
				m.auth.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "ada@example.com", Password: "secret1"}).
					Return(&dto.AuthResponse{User: dto.UserResponse{ID: "user-1"}, AccessToken: "jwt"}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body string) {
				assert.Contains(t, body, `"access_token":"jwt"`)
			},
		},
		{
			name:   "login bad password",
			method: http.MethodPost,
			path:   "/api/v1/auth/login",
			body:   `{"email":"ada@example.com","password":"nope"}`,
			f: func(m apiMocks) {
				m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, identity.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantJSON:   `{"message":"Invalid email or password"}`,
		},
		{
			name:   "logout revokes token",
			method: http.MethodPost,
			path:   "/api/v1/auth/logout",
			authed: true,
			f: func(m apiMocks) {
				m.auth.EXPECT().Logout(gomock.Any(), testToken).Return(errors.New("provider down"))
			},
			wantStatus: http.StatusOK,
			wantJSON:   `{"message":"Signed out"}`,
		},
		{
			name:       "logout anonymous",
			method:     http.MethodPost,
			path:       "/api/v1/auth/logout",
			wantStatus: http.StatusOK,
		},
		{
			name:       "me",
			method:     http.MethodGet,
			path:       "/api/v1/auth/me",
			authed:     true,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body string) {
				assert.Contains(t, body, `"username":"ada"`)
			},
		},
		{
			name:       "me anonymous",
			method:     http.MethodGet,
			path:       "/api/v1/auth/me",
			wantStatus: http.StatusUnauthorized,
		},
	})
}

func TestQuizController(t *testing.T) {
	t.Parallel()

	quiz := &dto.QuizResponse{
		ID:       "quiz-1",
		VideoURL: "https://youtu.be/abc",
		Topic:    "Photosynthesis 101",
		Questions: []dto.QuizQuestionResponse{
			{Index: 0, Question: "What is made?", Options: []string{"A", "B", "C", "D"}},
		},
	}

	runCases(t, []apiCase{
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/api/v1/quizzes",
			body:   `{"video_url":"https://youtu.be/abc"}`,
			authed: true,
			f: func(m apiMocks) {
				m.quizzes.EXPECT().CreateQuiz(gomock.Any(), testUser, "https://youtu.be/abc").Return(quiz, nil)
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body string) {
				assert.Contains(t, body, `"id":"quiz-1"`)
				assert.NotContains(t, body, "correct")
			},
		},
		{
			name:       "create anonymous",
			method:     http.MethodPost,
			path:       "/api/v1/quizzes",
			body:       `{"video_url":"https://youtu.be/abc"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "create empty url",
			method: http.MethodPost,
			path:   "/api/v1/quizzes",
			body:   `{"video_url":""}`,
			authed: true,
			f: func(m apiMocks) {
				m.quizzes.EXPECT().CreateQuiz(gomock.Any(), testUser, "").Return(nil, &service.ValidationError{Message: "video URL is required"})
			},
			wantStatus: http.StatusBadRequest,
			wantJSON:   `{"message":"video URL is required"}`,
		},
		{
			name:   "create generation failed",
			method: http.MethodPost,
			path:   "/api/v1/quizzes",
			body:   `{"video_url":"https://youtu.be/abc"}`,
			authed: true,
			f: func(m apiMocks) {
				m.quizzes.EXPECT().CreateQuiz(gomock.Any(), testUser, gomock.Any()).Return(nil, service.ErrGenerationFailed)
			},
			wantStatus: http.StatusBadGateway,
			wantJSON:   `{"message":"Failed to generate quiz. Please check the URL or try again."}`,
		},
		{
			name:   "get expired",
			method: http.MethodGet,
			path:   "/api/v1/quizzes/quiz-1",
			authed: true,
			f: func(m apiMocks) {
				m.quizzes.EXPECT().GetQuiz(gomock.Any(), testUser, "quiz-1").Return(nil, service.ErrQuizNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "submit passing",
			method: http.MethodPost,
			path:   "/api/v1/quizzes/quiz-1/submit",
			body:   `{"answers":[0,1,2,3,null]}`,
			authed: true,
			f: func(m apiMocks) {
				m.quizzes.EXPECT().SubmitQuiz(gomock.Any(), testUser, "quiz-1", []*int{intPtr(0), intPtr(1), intPtr(2), intPtr(3), nil}).
					Return(&dto.QuizResultResponse{
						CorrectAnswers: 4, TotalQuestions: 5, ScorePercentage: 80, Passed: true, PassingScore: 80,
						Certificate: &dto.CertificateResponse{ID: "cert-1", UserName: "ada", Score: 80, IssuedAt: issuedAt},
					}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body string) {
				assert.Contains(t, body, `"score_percentage":80`)
				assert.Contains(t, body, `"passed":true`)
				assert.Contains(t, body, `"id":"cert-1"`)
			},
		},
		{
			name:   "submit save failure",
			method: http.MethodPost,
			path:   "/api/v1/quizzes/quiz-1/submit",
			body:   `{"answers":[0,1,2,3,0]}`,
			authed: true,
			f: func(m apiMocks) {
				m.quizzes.EXPECT().SubmitQuiz(gomock.Any(), testUser, "quiz-1", gomock.Any()).
					Return(&dto.QuizResultResponse{CorrectAnswers: 5, TotalQuestions: 5, ScorePercentage: 100, Passed: true, PassingScore: 80, CertificateError: "save failed"}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body string) {
				assert.Contains(t, body, `"certificate":null`)
				assert.Contains(t, body, `"certificate_error":"save failed"`)
			},
		},
		{
			name:       "submit without answers",
			method:     http.MethodPost,
			path:       "/api/v1/quizzes/quiz-1/submit",
			body:       `{}`,
			authed:     true,
			wantStatus: http.StatusBadRequest,
		},
	})
}

func TestCertificateController(t *testing.T) {
	t.Parallel()

	found := func() service.VerificationResult {
		return service.VerificationResult{
			Status: service.VerificationFound,
			Certificate: &dto.CertificateDetailResponse{
				CertificateResponse: dto.CertificateResponse{ID: "cert-1", UserName: "ada", Topic: "Photosynthesis 101", Score: 100, IssuedAt: issuedAt},
				Review:              []dto.ReviewItem{{Question: "Q?", Options: []string{"A", "B", "C", "D"}, Correct: true}},
			},
		}
	}

	runCases(t, []apiCase{
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/api/v1/certificates",
			authed: true,
			f: func(m apiMocks) {
				m.certs.EXPECT().ListForUser(gomock.Any(), "user-1").Return([]dto.CertificateResponse{}, nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   `[]`,
		},
		{
			name:   "list unavailable",
			method: http.MethodGet,
			path:   "/api/v1/certificates",
			authed: true,
			f: func(m apiMocks) {
				m.certs.EXPECT().ListForUser(gomock.Any(), "user-1").Return(nil, service.ErrServiceUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:   "get someone else's",
			method: http.MethodGet,
			path:   "/api/v1/certificates/cert-9",
			authed: true,
			f: func(m apiMocks) {
				m.certs.EXPECT().GetForUser(gomock.Any(), "cert-9", "user-1").Return(nil, service.ErrCertificateNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantJSON:   `{"message":"Certificate not found"}`,
		},
		{
			name:   "verify without review",
			method: http.MethodGet,
			path:   "/api/v1/verify/cert-1",
			f: func(m apiMocks) {
				m.certs.EXPECT().Verify(gomock.Any(), "cert-1").Return(found())
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"found"`)
				assert.NotContains(t, body, `"review"`)
			},
		},
		{
			name:   "verify with review",
			method: http.MethodGet,
			path:   "/api/v1/verify/cert-1?review=true",
			f: func(m apiMocks) {
				m.certs.EXPECT().Verify(gomock.Any(), "cert-1").Return(found())
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body string) {
				assert.Contains(t, body, `"review":[`)
			},
		},
		{
			name:   "verify with non-boolean review value",
			method: http.MethodGet,
			path:   "/api/v1/verify/cert-1?review=yes",
			f: func(m apiMocks) {
				m.certs.EXPECT().Verify(gomock.Any(), "cert-1").Return(found())
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body string) {
				assert.NotContains(t, body, `"review"`)
			},
		},
		{
			name:   "verify unknown",
			method: http.MethodGet,
			path:   "/api/v1/verify/nope",
			f: func(m apiMocks) {
				m.certs.EXPECT().Verify(gomock.Any(), "nope").Return(service.VerificationResult{Status: service.VerificationNotFound})
			},
			wantStatus: http.StatusNotFound,
			wantJSON:   `{"status":"not_found","message":"No certificate exists with this ID"}`,
		},
		{
			name:   "verify unavailable",
			method: http.MethodGet,
			path:   "/api/v1/verify/cert-1",
			f: func(m apiMocks) {
				m.certs.EXPECT().Verify(gomock.Any(), "cert-1").Return(service.VerificationResult{Status: service.VerificationUnavailable})
			},
			wantStatus: http.StatusServiceUnavailable,
			check: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"unavailable"`)
			},
		},
	})
}

func TestTranscriptController(t *testing.T) {
	t.Parallel()

	runCases(t, []apiCase{
		{
			name:       "missing url",
			method:     http.MethodGet,
			path:       "/api/transcript",
			wantStatus: http.StatusBadRequest,
			wantJSON:   `{"error":"Missing video URL"}`,
		},
		{
			name:   "transcript",
			method: http.MethodGet,
			path:   "/api/transcript?url=https%3A%2F%2Fyoutu.be%2Fabc",
			f: func(m apiMocks) {
				m.transcripts.EXPECT().FetchTranscript(gomock.Any(), "https://youtu.be/abc").Return("hello world", nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   `{"transcript":"hello world"}`,
		},
		{
			name:   "captions disabled",
			method: http.MethodGet,
			path:   "/api/transcript?url=https%3A%2F%2Fyoutu.be%2Fabc",
			f: func(m apiMocks) {
				m.transcripts.EXPECT().FetchTranscript(gomock.Any(), "https://youtu.be/abc").Return("", errors.New("no captions"))
			},
			wantStatus: http.StatusInternalServerError,
			wantJSON:   `{"error":"Could not fetch transcript. Captions might be disabled."}`,
		},
	})
}

func TestRoutes_RevokedBearer(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := newTestRouter(ctrl, func(m apiMocks) {
		m.auth.EXPECT().CurrentUser(gomock.Any(), "revoked").Return(nil, identity.ErrUnauthorized)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
