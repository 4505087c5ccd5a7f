package api

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/vidcert/internal/session"
)

// Routes groups the JSON API controllers so they can be registered together.
type Routes struct {
	Sessions     *session.Manager
	Auth         *AuthController
	Quizzes      *QuizController
	Certificates *CertificateController
	Transcript   *TranscriptController
}

func (r *Routes) Register(router *gin.Engine) {
	router.GET("/api/transcript", r.Transcript.GetTranscript)

	v1 := router.Group("/api/v1")
	v1.Use(r.Sessions.Resolve())
	{
		v1.POST("/auth/register", r.Auth.Register)
		v1.POST("/auth/login", r.Auth.Login)
		v1.POST("/auth/logout", r.Auth.Logout)
		v1.GET("/verify/:certificate_id", r.Certificates.VerifyCertificate)
	}

	protected := v1.Group("")
	protected.Use(session.RequireUser())
	{
		protected.GET("/auth/me", r.Auth.Me)

		protected.POST("/quizzes", r.Quizzes.CreateQuiz)
		protected.GET("/quizzes/:quiz_id", r.Quizzes.GetQuiz)
		protected.POST("/quizzes/:quiz_id/submit", r.Quizzes.SubmitQuiz)

		protected.GET("/certificates", r.Certificates.ListCertificates)
		protected.GET("/certificates/:certificate_id", r.Certificates.GetCertificate)
	}
}
